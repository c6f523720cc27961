package booking

import (
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain/item"
	"github.com/DmitryMisevra/shareit/internal/domain/user"
)

// Booking is a reservation of an item by a user for a time window. Item
// and booker are carried as resolved snapshots; owner identity and the
// availability flag are always read through the item reference.
type Booking struct {
	id     int64
	start  time.Time
	end    time.Time
	item   *item.Item
	booker *user.User
	status Status
}

// New creates a WAITING booking that has not been persisted yet; the store
// assigns the id on save. The window is expected to have passed
// ValidateWindow before this point.
func New(start, end time.Time, it *item.Item, booker *user.User) *Booking {
	return &Booking{
		start:  start,
		end:    end,
		item:   it,
		booker: booker,
		status: StatusWaiting,
	}
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id int64, start, end time.Time, it *item.Item, booker *user.User, status Status) *Booking {
	return &Booking{
		id:     id,
		start:  start,
		end:    end,
		item:   it,
		booker: booker,
		status: status,
	}
}

func (b *Booking) ID() int64          { return b.id }
func (b *Booking) Start() time.Time   { return b.start }
func (b *Booking) End() time.Time     { return b.end }
func (b *Booking) Item() *item.Item   { return b.item }
func (b *Booking) Booker() *user.User { return b.booker }
func (b *Booking) Status() Status     { return b.status }
