package booking

import (
	"context"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
)

// Info is the short projection of a booking attached to an item view
// (last and next booking of the item).
type Info struct {
	ID       int64
	BookerID int64
}

// Repository defines the persistence contract for bookings. Listings are
// ordered by start time descending with the store-assigned id ascending as
// tie-break.
type Repository interface {
	// FindByID retrieves a booking with its item and booker resolved.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// Create persists a new booking and returns the assigned id.
	Create(ctx context.Context, b *Booking) (int64, error)

	// UpdateStatus moves a booking from one status to another atomically;
	// it fails with a conflict error when the stored status no longer
	// matches from.
	UpdateStatus(ctx context.Context, id int64, from, to Status) error

	// FindByBookerID lists bookings created by the user, filtered by cond.
	FindByBookerID(ctx context.Context, bookerID int64, cond Condition, page *domain.Page) ([]*Booking, error)

	// FindByOwnerID lists bookings of all items owned by the user,
	// filtered by cond.
	FindByOwnerID(ctx context.Context, ownerID int64, cond Condition, page *domain.Page) ([]*Booking, error)

	// FindLastForItem returns the latest APPROVED booking of the item
	// started before now, or nil when there is none.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*Info, error)

	// FindNextForItem returns the earliest APPROVED booking of the item
	// starting after now, or nil when there is none.
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*Info, error)

	// HasFinishedBooking reports whether the user has an APPROVED booking
	// of the item that ended before now.
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}
