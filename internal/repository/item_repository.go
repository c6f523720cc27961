package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/DmitryMisevra/shareit/internal/domain"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          int64  `gorm:"column:item_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:item_name;not null;size:255"`
	Description string `gorm:"column:description;not null;size:1000"`
	OwnerID     int64  `gorm:"column:owner_id;index;not null"`
	Available   bool   `gorm:"column:available;not null"`
	RequestID   *int64 `gorm:"column:request_id;index"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of item.Repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item by id.
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("item_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item", id)
		}
		return nil, fmt.Errorf("failed to find item by id: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwnerID lists the owner's items ordered by id ascending.
func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID int64, page *domain.Page) ([]*itemDomain.Item, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("item_id ASC")
	query = applyPage(query, page)

	var models []ItemModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// SearchByText matches name or description case-insensitively; only
// available items are returned.
func (r *GormItemRepository) SearchByText(ctx context.Context, text string, page *domain.Page) ([]*itemDomain.Item, error) {
	pattern := "%" + text + "%"
	query := r.db.WithContext(ctx).
		Where("available = TRUE").
		Where("item_name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("item_id ASC")
	query = applyPage(query, page)

	var models []ItemModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestID lists the items answering an item request.
func (r *GormItemRepository) FindByRequestID(ctx context.Context, requestID int64) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("item_id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

// ExistsByOwnerID reports whether the user owns at least one item.
func (r *GormItemRepository) ExistsByOwnerID(ctx context.Context, ownerID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count owner items: %w", err)
	}
	return count > 0, nil
}

// Save persists a new item and returns the assigned id.
func (r *GormItemRepository) Save(ctx context.Context, i *itemDomain.Item) (int64, error) {
	model := ItemModel{
		Name:        i.Name(),
		Description: i.Description(),
		OwnerID:     i.OwnerID(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to save item: %w", err)
	}
	return model.ID, nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, i *itemDomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("item_id = ?", i.ID()).
		Updates(map[string]interface{}{
			"item_name":   i.Name(),
			"description": i.Description(),
			"available":   i.Available(),
			"request_id":  i.RequestID(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("item", i.ID())
	}
	return nil
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(m.ID, m.OwnerID, m.Name, m.Description, m.Available, m.RequestID)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i, m := range models {
		items[i] = toDomainItem(&m)
	}
	return items
}

// applyPage adds the optional offset/limit slice to a listing query.
func applyPage(query *gorm.DB, page *domain.Page) *gorm.DB {
	if page == nil {
		return query
	}
	return query.Offset(int(page.From)).Limit(int(page.Size))
}
