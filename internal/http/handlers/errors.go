package handlers

import (
	"errors"

	"github.com/yungbote/techverse/internal/platform/apierr"
	"github.com/yungbote/techverse/internal/services"
)

// itemAPIError maps an ItemService error to the transport error. failCode is
// the code reported for storage failures of this particular operation.
func itemAPIError(err error, failCode string) *apierr.Error {
	var verr *services.ValidationError
	var serr *services.StorageError
	switch {
	case errors.As(err, &verr):
		return apierr.BadRequest("validation_failed", verr)
	case errors.Is(err, services.ErrItemNotFound):
		return apierr.NotFound("item_not_found", errors.New("Item not found"))
	case errors.As(err, &serr):
		return apierr.Internal(failCode, errors.New(serr.Message))
	}
	return apierr.Internal(failCode, errors.New("internal server error"))
}
