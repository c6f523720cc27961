package item

import (
	"context"

	"github.com/DmitryMisevra/shareit/internal/domain"
)

// Repository defines persistence operations for items.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwnerID lists the owner's items ordered by id ascending.
	FindByOwnerID(ctx context.Context, ownerID int64, page *domain.Page) ([]*Item, error)

	// SearchByText matches name or description case-insensitively; only
	// available items are returned.
	SearchByText(ctx context.Context, text string, page *domain.Page) ([]*Item, error)

	// FindByRequestID lists the items answering an item request.
	FindByRequestID(ctx context.Context, requestID int64) ([]*Item, error)

	// ExistsByOwnerID reports whether the user owns at least one item.
	ExistsByOwnerID(ctx context.Context, ownerID int64) (bool, error)

	Save(ctx context.Context, i *Item) (int64, error)
	Update(ctx context.Context, i *Item) error
}

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	FindByID(ctx context.Context, id int64) (*Comment, error)
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)
	Save(ctx context.Context, c *Comment) (int64, error)
}
