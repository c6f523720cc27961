package application

import (
	"context"
	"fmt"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	bookingDomain "github.com/DmitryMisevra/shareit/internal/domain/booking"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a booking.
type CreateBookingRequest struct {
	ItemID int64      `json:"itemId" binding:"required"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// BookingDTO is the response representation of a booking, with the item
// and booker resolved.
type BookingDTO struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemDTO   `json:"item"`
	Booker UserDTO   `json:"booker"`
}

// BookingEventPublisher announces booking lifecycle changes; publication
// must never fail the originating call.
type BookingEventPublisher interface {
	BookingCreated(ctx context.Context, b *bookingDomain.Booking)
	BookingStatusChanged(ctx context.Context, b *bookingDomain.Booking)
}

// BookingService orchestrates the booking lifecycle: creation, the owner's
// approve/reject verdict, retrieval and filtered listings. It is stateless
// across calls; every operation re-fetches current persisted state before
// acting.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	publisher BookingEventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	publisher BookingEventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking books an item for the given user. All checks run before
// the single store write; the returned booking is the re-fetched persisted
// record.
func (s *BookingService) CreateBooking(ctx context.Context, creatorID int64, req CreateBookingRequest) (*BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if it.IsOwnedBy(creatorID) {
		return nil, domain.NewForbiddenError("owners cannot book their own items")
	}

	if !it.Available() {
		return nil, domain.NewItemNotAvailableError(fmt.Sprintf("item with id %d is not available for booking", it.ID()))
	}

	if err := bookingDomain.ValidateWindow(req.Start, req.End, time.Now()); err != nil {
		return nil, err
	}

	id, err := s.bookings.Create(ctx, bookingDomain.New(*req.Start, *req.End, it, booker))
	if err != nil {
		return nil, err
	}

	created, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", created.ID()),
		zap.Int64("item_id", it.ID()),
		zap.Int64("booker_id", creatorID),
	)
	s.publisher.BookingCreated(ctx, created)

	result := toBookingDTO(created)
	return &result, nil
}

// UpdateBookingStatus records the owner's verdict on a WAITING booking:
// approve moves it to APPROVED, otherwise REJECTED. Repeating a verdict
// the booking already carries is a conflict; the opposite verdict is not.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, userID, bookingID int64, approve bool) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bookingDomain.CanMutateStatus(userID, b) {
		return nil, domain.NewForbiddenError("only the item's owner may change the booking status")
	}

	target := bookingDomain.StatusForApproval(approve)
	if b.Status() == target {
		return nil, domain.NewConflictError(fmt.Sprintf("booking already has status %s", target))
	}

	// Compare-and-swap against the status we just read: a concurrent
	// verdict on the same booking loses the race and surfaces as a
	// conflict instead of a silent overwrite.
	if err := s.bookings.UpdateStatus(ctx, bookingID, b.Status(), target); err != nil {
		return nil, err
	}

	updated, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", updated.Status().String()),
	)
	s.publisher.BookingStatusChanged(ctx, updated)

	result := toBookingDTO(updated)
	return &result, nil
}

// FindBookingByID retrieves a booking for its booker or the item's owner;
// everyone else is refused.
func (s *BookingService) FindBookingByID(ctx context.Context, userID, bookingID int64) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bookingDomain.CanView(userID, b) {
		return nil, domain.NewForbiddenError("bookings are visible only to the booker and the item's owner")
	}

	result := toBookingDTO(b)
	return &result, nil
}

// GetBookingsByBooker lists the bookings created by the user, filtered by
// the state keyword and ordered by start descending.
func (s *BookingService) GetBookingsByBooker(ctx context.Context, userID int64, state string, from, size *int64) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByBookerID(ctx, userID, filter.Condition(time.Now()), domain.PageOf(from, size))
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// GetBookingsByOwner lists the bookings of all items the user owns,
// filtered by the state keyword and ordered by start descending. A user
// owning no items is refused before the query is issued.
func (s *BookingService) GetBookingsByOwner(ctx context.Context, userID int64, state string, from, size *int64) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	hasItems, err := s.items.ExistsByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasItems {
		return nil, domain.NewNotFoundMessageError(fmt.Sprintf("user with id %d owns no items", userID))
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByOwnerID(ctx, userID, filter.Condition(time.Now()), domain.PageOf(from, size))
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// --- Helpers ---

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     b.ID(),
		Start:  b.Start(),
		End:    b.End(),
		Status: b.Status().String(),
		Item:   toItemDTO(b.Item()),
		Booker: toUserDTO(b.Booker()),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}
