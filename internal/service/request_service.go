package service

import (
	"context"
	"time"

	"github.com/LuckyFay12/shareit/internal/domain"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/rs/zerolog"
)

// RequestService owns the item request board: wishes users post for items
// they need, answered by items referencing the request.
type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: user.ID,
		Created:     time.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetUserRequests returns the user's own requests, newest first.
func (s *RequestService) GetUserRequests(ctx context.Context, userID int64) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetRequestsByRequestor(ctx, userID)
}

// GetAllRequests returns other users' requests, newest first.
func (s *RequestService) GetAllRequests(ctx context.Context, userID int64) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetOtherUsersRequests(ctx, userID)
}

// GetByID returns one request together with the items answering it.
func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return &models.ItemRequestView{
		ID:          request.ID,
		Description: request.Description,
		RequestorID: request.RequestorID,
		Created:     request.Created,
		Items:       items,
	}, nil
}
