package application

import (
	"context"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	requestDomain "github.com/DmitryMisevra/shareit/internal/domain/request"
	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateRequestRequest is the request DTO for asking for an item.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestDTO is the response representation of an item request together
// with the items answering it.
type RequestDTO struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

// RequestService manages item requests: asks for items nobody has listed
// yet, answered by owners listing items that reference the request.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// AddRequest records a new item request for the given user.
func (s *RequestService) AddRequest(ctx context.Context, userID int64, req CreateRequestRequest) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	id, err := s.requests.Save(ctx, requestDomain.New(userID, req.Description))
	if err != nil {
		return nil, err
	}

	created, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", id),
		zap.Int64("requestor_id", userID),
	)
	return s.toRequestDTO(ctx, created)
}

// GetOwnRequests lists the user's own requests, newest first, each with
// the items answering it.
func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequestorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetAllRequests lists every other user's requests, newest first.
func (s *RequestService) GetAllRequests(ctx context.Context, userID int64, from, size *int64) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindAllExcept(ctx, userID, domain.PageOf(from, size))
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetRequestByID retrieves a single request for any existing user.
func (s *RequestService) GetRequestByID(ctx context.Context, userID, requestID int64) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTO(ctx, r)
}

// --- Helpers ---

func (s *RequestService) toRequestDTO(ctx context.Context, r *requestDomain.ItemRequest) (*RequestDTO, error) {
	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}

	itemDTOs := make([]ItemDTO, len(items))
	for i, it := range items {
		itemDTOs[i] = toItemDTO(it)
	}
	return &RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       itemDTOs,
	}, nil
}

func (s *RequestService) toRequestDTOs(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	dtos := make([]RequestDTO, 0, len(requests))
	for _, r := range requests {
		dto, err := s.toRequestDTO(ctx, r)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}
