package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	bookingDomain "github.com/DmitryMisevra/shareit/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"column:booking_id;primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	ItemID    int64     `gorm:"column:item_id;index;not null"`
	BookerID  int64     `gorm:"column:booker_id;index;not null"`
	Status    string    `gorm:"column:booking_status;not null;size:16;index"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of
// booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking with its item and booker resolved.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}

	bookings, err := r.resolveAssociations(ctx, []BookingModel{model})
	if err != nil {
		return nil, err
	}
	return bookings[0], nil
}

// Create persists a new booking and returns the assigned id.
func (r *GormBookingRepository) Create(ctx context.Context, b *bookingDomain.Booking) (int64, error) {
	model := BookingModel{
		StartDate: b.Start(),
		EndDate:   b.End(),
		ItemID:    b.Item().ID(),
		BookerID:  b.Booker().ID(),
		Status:    b.Status().String(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to save booking: %w", err)
	}
	return model.ID, nil
}

// UpdateStatus moves a booking between statuses with a compare-and-swap on
// the stored status; a lost race surfaces as a conflict.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to bookingDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booking_id = ? AND booking_status = ?", id, from.String()).
		Update("booking_status", to.String())
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking status was changed by another transaction")
	}
	return nil
}

// FindByBookerID lists bookings created by the user, filtered by cond.
func (r *GormBookingRepository) FindByBookerID(ctx context.Context, bookerID int64, cond bookingDomain.Condition, page *domain.Page) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Where("booker_id = ?", bookerID)
	return r.scan(ctx, query, cond, page)
}

// FindByOwnerID lists bookings of all items owned by the user, filtered by
// cond.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID int64, cond bookingDomain.Condition, page *domain.Page) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("item_id IN (?)", r.db.Model(&ItemModel{}).Select("item_id").Where("owner_id = ?", ownerID))
	return r.scan(ctx, query, cond, page)
}

// FindLastForItem returns the latest APPROVED booking of the item started
// before now, or nil when there is none.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Info, error) {
	return r.findInfo(ctx, itemID,
		"start_date < ?", now, "end_date DESC")
}

// FindNextForItem returns the earliest APPROVED booking of the item
// starting after now, or nil when there is none.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Info, error) {
	return r.findInfo(ctx, itemID,
		"start_date > ?", now, "start_date ASC")
}

// HasFinishedBooking reports whether the user has an APPROVED booking of
// the item that ended before now.
func (r *GormBookingRepository) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND booking_status = ? AND end_date < ?",
			bookerID, itemID, bookingDomain.StatusApproved.String(), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// scan runs a filtered booking listing ordered by start descending, ids
// ascending on ties.
func (r *GormBookingRepository) scan(ctx context.Context, query *gorm.DB, cond bookingDomain.Condition, page *domain.Page) ([]*bookingDomain.Booking, error) {
	query = applyCondition(query, cond).
		Order("start_date DESC, booking_id ASC")
	query = applyPage(query, page)

	var models []BookingModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return r.resolveAssociations(ctx, models)
}

func (r *GormBookingRepository) findInfo(ctx context.Context, itemID int64, startCond string, now time.Time, order string) (*bookingDomain.Info, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND booking_status = ?", itemID, bookingDomain.StatusApproved.String()).
		Where(startCond, now).
		Order(order).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking info for item: %w", err)
	}
	return &bookingDomain.Info{ID: model.ID, BookerID: model.BookerID}, nil
}

// applyCondition translates a state predicate to SQL filters.
func applyCondition(query *gorm.DB, cond bookingDomain.Condition) *gorm.DB {
	if cond.StartAtOrBefore != nil {
		query = query.Where("start_date <= ?", *cond.StartAtOrBefore)
	}
	if cond.StartAfter != nil {
		query = query.Where("start_date > ?", *cond.StartAfter)
	}
	if cond.EndBefore != nil {
		query = query.Where("end_date < ?", *cond.EndBefore)
	}
	if cond.EndAtOrAfter != nil {
		query = query.Where("end_date >= ?", *cond.EndAtOrAfter)
	}
	if cond.Status != nil {
		query = query.Where("booking_status = ?", cond.Status.String())
	}
	return query
}

// resolveAssociations batch-loads the items and bookers referenced by the
// given booking rows and assembles domain bookings.
func (r *GormBookingRepository) resolveAssociations(ctx context.Context, models []BookingModel) ([]*bookingDomain.Booking, error) {
	if len(models) == 0 {
		return []*bookingDomain.Booking{}, nil
	}

	itemIDs := make([]int64, 0, len(models))
	bookerIDs := make([]int64, 0, len(models))
	for _, m := range models {
		itemIDs = append(itemIDs, m.ItemID)
		bookerIDs = append(bookerIDs, m.BookerID)
	}

	var itemModels []ItemModel
	if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load booking items: %w", err)
	}
	items := make(map[int64]*ItemModel, len(itemModels))
	for i := range itemModels {
		items[itemModels[i].ID] = &itemModels[i]
	}

	var userModels []UserModel
	if err := r.db.WithContext(ctx).Where("user_id IN ?", bookerIDs).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load booking users: %w", err)
	}
	users := make(map[int64]*UserModel, len(userModels))
	for i := range userModels {
		users[userModels[i].ID] = &userModels[i]
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		itemModel, ok := items[m.ItemID]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing item %d", m.ID, m.ItemID)
		}
		userModel, ok := users[m.BookerID]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing user %d", m.ID, m.BookerID)
		}
		status, err := bookingDomain.ParseStatus(m.Status)
		if err != nil {
			return nil, err
		}
		bookings[i] = bookingDomain.Reconstruct(
			m.ID,
			m.StartDate,
			m.EndDate,
			toDomainItem(itemModel),
			toDomainUser(userModel),
			status,
		)
	}
	return bookings, nil
}
