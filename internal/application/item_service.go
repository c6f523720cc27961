package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	bookingDomain "github.com/DmitryMisevra/shareit/internal/domain/booking"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest is the request DTO for a partial item update; nil
// fields stay untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// BookingInfoDTO is the short booking projection attached to an item view.
type BookingInfoDTO struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are populated only on views requested by the owner.
type ItemDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerID     int64           `json:"ownerId"`
	Available   bool            `json:"available"`
	RequestID   *int64          `json:"requestId,omitempty"`
	LastBooking *BookingInfoDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingInfoDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO    `json:"comments,omitempty"`
}

// ItemService manages the item catalog: listings, partial updates, text
// search and comments.
type ItemService struct {
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		users:    users,
		bookings: bookings,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	id, err := s.items.Save(ctx, itemDomain.New(ownerID, req.Name, req.Description, *req.Available, req.RequestID))
	if err != nil {
		return nil, err
	}

	created, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", id),
		zap.Int64("owner_id", ownerID),
	)
	result := toItemDTO(created)
	return &result, nil
}

// UpdateItem applies a partial update; only the owner may change an item.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("only the owner may update an item")
	}

	it.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItemByID retrieves an item for any user; the owner's view is
// enriched with the last and next approved bookings. Comments are always
// attached.
func (s *ItemService) GetItemByID(ctx context.Context, userID, itemID int64) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	if it.IsOwnedBy(userID) {
		if err := s.attachBookingInfo(ctx, &dto); err != nil {
			return nil, err
		}
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	dto.Comments = toCommentDTOs(comments)
	return &dto, nil
}

// GetItemsByOwner lists the owner's items ordered by id, each enriched
// with its last and next approved bookings.
func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64, from, size *int64) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID, domain.PageOf(from, size))
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
		if err := s.attachBookingInfo(ctx, &dtos[i]); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// SearchItems matches available items by name or description. A blank
// query returns an empty list without hitting the store.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size *int64) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.SearchByText(ctx, text, domain.PageOf(from, size))
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// AddComment attaches feedback to an item. The author must have an
// APPROVED booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	finished, err := s.bookings.HasFinishedBooking(ctx, userID, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, domain.NewValidationError(fmt.Sprintf("user with id %d has no finished bookings of item %d", userID, itemID))
	}

	id, err := s.comments.Save(ctx, itemDomain.NewComment(req.Text, itemID, userID))
	if err != nil {
		return nil, err
	}

	created, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toCommentDTO(created)
	return &result, nil
}

// --- Helpers ---

func (s *ItemService) attachBookingInfo(ctx context.Context, dto *ItemDTO) error {
	now := time.Now()

	last, err := s.bookings.FindLastForItem(ctx, dto.ID, now)
	if err != nil {
		return err
	}
	if last != nil {
		dto.LastBooking = &BookingInfoDTO{ID: last.ID, BookerID: last.BookerID}
	}

	next, err := s.bookings.FindNextForItem(ctx, dto.ID, now)
	if err != nil {
		return err
	}
	if next != nil {
		dto.NextBooking = &BookingInfoDTO{ID: next.ID, BookerID: next.BookerID}
	}
	return nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		OwnerID:     it.OwnerID(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    c.Created(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
