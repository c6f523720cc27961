package request

import (
	"context"

	"github.com/DmitryMisevra/shareit/internal/domain"
)

// Repository defines persistence operations for item requests. Listings
// are ordered by creation time descending.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)
	FindByRequestorID(ctx context.Context, requestorID int64) ([]*ItemRequest, error)

	// FindAllExcept lists requests created by everyone but the given user.
	FindAllExcept(ctx context.Context, requestorID int64, page *domain.Page) ([]*ItemRequest, error)

	Save(ctx context.Context, r *ItemRequest) (int64, error)
}
