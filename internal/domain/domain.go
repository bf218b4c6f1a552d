package domain

import (
	"github.com/yungbote/techverse/internal/domain/catalog"
	"github.com/yungbote/techverse/internal/domain/items"
)

const MaxItemTextLength = items.MaxTextLength

type Item = items.Item

type Book = catalog.Book
type Tech = catalog.Tech
type BookTechLink = catalog.BookTechLink
type Dataset = catalog.Dataset
