package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/LuckyFay12/shareit/internal/cache"
	"github.com/LuckyFay12/shareit/internal/domain"
	"github.com/LuckyFay12/shareit/internal/events"
	"github.com/LuckyFay12/shareit/internal/metrics"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/rs/zerolog"
)

// ItemService owns the item catalog, the comment ledger and the
// availability aggregation shown on item reads.
type ItemService struct {
	repo      domain.Repository
	viewCache domain.ViewCache
	eventBus  domain.EventPublisher
	cacheTTL  time.Duration
	logger    *zerolog.Logger
}

func NewItemService(repo domain.Repository, viewCache domain.ViewCache, eventBus domain.EventPublisher, cacheTTL time.Duration, logger *zerolog.Logger) *ItemService {
	if cacheTTL <= 0 {
		cacheTTL = models.DefaultCacheTTL * time.Second
	}
	return &ItemService{
		repo:      repo,
		viewCache: viewCache,
		eventBus:  eventBus,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	owner, err := s.repo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}
	item.OwnerID = owner.ID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// Update applies a partial update: only the supplied fields change.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the owner may edit an item", ErrAccessDenied)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, itemID)
	return item, nil
}

// GetByID assembles the item view. Comments are attached for everyone;
// booking summaries only when the viewer is the owner. Non-owner views
// carry no viewer-specific data and are served through the cache.
func (s *ItemService) GetByID(ctx context.Context, viewerID, itemID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != viewerID {
		return s.cachedView(ctx, item)
	}

	view, err := s.buildView(ctx, item)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	next, err := s.repo.GetNextBooking(ctx, item.ID, now,
		[]models.Status{models.StatusApproved, models.StatusWaiting})
	if err != nil {
		return nil, err
	}
	last, err := s.repo.GetLastBooking(ctx, item.ID, now,
		[]models.Status{models.StatusApproved})
	if err != nil {
		return nil, err
	}
	if next != nil {
		view.NextBooking = &models.BookingShortInfo{ID: next.ID, BookerID: next.BookerID}
	}
	if last != nil {
		view.LastBooking = &models.BookingShortInfo{ID: last.ID, BookerID: last.BookerID}
	}
	return view, nil
}

func (s *ItemService) GetUserItems(ctx context.Context, userID int64) ([]models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetItemsByOwner(ctx, userID)
}

// Search returns available items matching the text as a case-insensitive
// substring. A blank query short-circuits without touching the store.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}

	key := cache.SearchKey(text)
	if s.viewCache != nil {
		if raw, ok := s.viewCache.Get(ctx, key); ok {
			var items []models.Item
			if err := json.Unmarshal(raw, &items); err == nil {
				metrics.IncCacheHit("search")
				return items, nil
			}
		}
		metrics.IncCacheMiss("search")
	}

	items, err := s.repo.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}

	if s.viewCache != nil {
		if raw, err := json.Marshal(items); err == nil {
			s.viewCache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return items, nil
}

// AddComment records post-rental feedback. Only a user with at least one
// booking on the item already finished by time may comment; the creation
// timestamp is assigned here, never taken from the client.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.CommentView, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bookings, err := s.repo.GetBookingsByItemAndBooker(ctx, itemID, authorID)
	if err != nil {
		return nil, err
	}
	finished := false
	for i := range bookings {
		if bookings[i].IsFinished(now) {
			finished = true
			break
		}
	}
	if !finished {
		return nil, fmt.Errorf("%w: only a past renter may comment on an item", ErrValidation)
	}

	comment := &models.Comment{
		Text:     text,
		ItemID:   item.ID,
		AuthorID: author.ID,
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: author.ID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	s.invalidate(ctx, itemID)

	return &models.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		ItemName:   item.Name,
		Created:    comment.Created,
	}, nil
}

// ListComments returns the item's comment history in creation order.
func (s *ItemService) ListComments(ctx context.Context, itemID int64) ([]models.CommentView, error) {
	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetCommentViewsByItem(ctx, itemID)
}

func (s *ItemService) cachedView(ctx context.Context, item *models.Item) (*models.ItemView, error) {
	key := cache.ItemViewKey(item.ID)
	if s.viewCache != nil {
		if raw, ok := s.viewCache.Get(ctx, key); ok {
			var view models.ItemView
			if err := json.Unmarshal(raw, &view); err == nil {
				metrics.IncCacheHit("item_view")
				return &view, nil
			}
		}
		metrics.IncCacheMiss("item_view")
	}

	view, err := s.buildView(ctx, item)
	if err != nil {
		return nil, err
	}

	if s.viewCache != nil {
		if raw, err := json.Marshal(view); err == nil {
			s.viewCache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return view, nil
}

func (s *ItemService) buildView(ctx context.Context, item *models.Item) (*models.ItemView, error) {
	comments, err := s.repo.GetCommentViewsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.CommentView{}
	}
	return &models.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
		Comments:    comments,
	}, nil
}

func (s *ItemService) invalidate(ctx context.Context, itemID int64) {
	if s.viewCache == nil {
		return
	}
	s.viewCache.Delete(ctx, cache.ItemViewKey(itemID))
}
