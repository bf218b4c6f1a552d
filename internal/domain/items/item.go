package items

import "time"

const MaxTextLength = 100

type Item struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Text      string    `gorm:"type:text;not null;column:text" json:"text"`
	CreatedAt time.Time `gorm:"not null;index:idx_items_created_at;column:created_at" json:"created_at"`
}

func (Item) TableName() string { return "items" }
