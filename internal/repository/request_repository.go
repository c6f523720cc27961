package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	requestDomain "github.com/DmitryMisevra/shareit/internal/domain/request"
	"gorm.io/gorm"
)

// RequestModel is the GORM model for the requests table.
type RequestModel struct {
	ID          int64     `gorm:"column:request_id;primaryKey;autoIncrement"`
	Description string    `gorm:"column:request_description;not null;size:1000"`
	RequestorID int64     `gorm:"column:requestor_id;index;not null"`
	Created     time.Time `gorm:"column:created;not null;autoCreateTime"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of
// request.Repository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID retrieves an item request by id.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item request", id)
		}
		return nil, fmt.Errorf("failed to find item request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequestorID lists the user's own requests, newest first.
func (r *GormRequestRepository) FindByRequestorID(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find item requests by requestor: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindAllExcept lists requests created by everyone but the given user,
// newest first.
func (r *GormRequestRepository) FindAllExcept(ctx context.Context, requestorID int64, page *domain.Page) ([]*requestDomain.ItemRequest, error) {
	query := r.db.WithContext(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created DESC")
	query = applyPage(query, page)

	var models []RequestModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// Save persists a new item request and returns the assigned id.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) (int64, error) {
	model := RequestModel{
		Description: req.Description(),
		RequestorID: req.RequestorID(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to save item request: %w", err)
	}
	return model.ID, nil
}

func toDomainRequest(m *RequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.Description, m.RequestorID, m.Created)
}

func toDomainRequests(models []RequestModel) []*requestDomain.ItemRequest {
	requests := make([]*requestDomain.ItemRequest, len(models))
	for i, m := range models {
		requests[i] = toDomainRequest(&m)
	}
	return requests
}
