package service

import (
	"context"
	"fmt"
	"time"

	"github.com/LuckyFay12/shareit/internal/domain"
	"github.com/LuckyFay12/shareit/internal/events"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the booking state machine, the time-windowed listing
// queries and the authorization rules around them.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create books an item for the requester. The item must be available and
// must not belong to the requester; the booking starts out WAITING.
func (s *BookingService) Create(ctx context.Context, requesterID int64, draft models.BookingDraft) (*models.Booking, error) {
	if draft.Start.IsZero() || draft.End.IsZero() || !draft.End.After(draft.Start) {
		return nil, fmt.Errorf("%w: booking end must be after start", ErrValidation)
	}

	requester, err := s.repo.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, draft.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item %d is not available for booking", ErrValidation, item.ID)
	}
	if item.OwnerID == requester.ID {
		return nil, fmt.Errorf("%w: owner cannot book own item", ErrValidation)
	}

	booking := &models.Booking{
		Start:    draft.Start,
		End:      draft.End,
		ItemID:   item.ID,
		BookerID: requester.ID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking, requesterID)
	return booking, nil
}

// Approve resolves the owner's decision on a WAITING booking. The status
// transition is persisted with the original status as a write condition, so
// two concurrent decisions cannot both apply.
func (s *BookingService) Approve(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the item owner may approve or reject a booking", ErrAccessDenied)
	}
	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: booking status must be WAITING", ErrValidation)
	}

	target := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		target = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.transition(ctx, bookingID, target); err != nil {
		return nil, err
	}
	booking.Status = target

	s.publishEvent(eventType, booking, userID)
	return booking, nil
}

// Cancel is the booker-initiated counterpart of a rejection: allowed only
// for the booker and only while the booking is still WAITING.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID {
		return nil, fmt.Errorf("%w: only the booker may cancel a booking", ErrAccessDenied)
	}
	if booking.Status != models.StatusWaiting {
		return nil, fmt.Errorf("%w: booking status must be WAITING", ErrValidation)
	}

	if err := s.transition(ctx, bookingID, models.StatusCanceled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCanceled

	s.publishEvent(events.EventBookingCanceled, booking, userID)
	return booking, nil
}

func (s *BookingService) transition(ctx context.Context, bookingID int64, to models.Status) error {
	err := s.repo.UpdateBookingStatusFrom(ctx, bookingID, models.StatusWaiting, to)
	if err == nil {
		return nil
	}
	// Lost the race: someone else decided first. Same rule violation as
	// reading a non-WAITING status up front.
	return fmt.Errorf("%w: booking status must be WAITING", ErrValidation)
}

// GetByID returns the booking to its booker or the item's owner.
func (s *BookingService) GetByID(ctx context.Context, bookingID, viewerID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID == viewerID {
		return booking, nil
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != viewerID {
		return nil, fmt.Errorf("%w: only the booker and the item owner may view a booking", ErrAccessDenied)
	}
	return booking, nil
}

// GetAll lists the user's bookings as booker, filtered by state.
// "now" is captured once so every window in the dispatch agrees on it.
func (s *BookingService) GetAll(ctx context.Context, bookerID int64, state models.StateFilter) ([]models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	now := time.Now()

	switch state {
	case models.StateAll:
		return s.repo.GetBookingsByBooker(ctx, bookerID)
	case models.StateCurrent:
		return s.repo.GetCurrentBookingsByBooker(ctx, bookerID, now)
	case models.StatePast:
		return s.repo.GetPastBookingsByBooker(ctx, bookerID, now)
	case models.StateFuture:
		return s.repo.GetFutureBookingsByBooker(ctx, bookerID, now)
	case models.StateWaiting:
		return s.repo.GetBookingsByBookerAndStatuses(ctx, bookerID, []models.Status{models.StatusWaiting})
	case models.StateRejected:
		return s.repo.GetBookingsByBookerAndStatuses(ctx, bookerID, models.RejectedStatuses)
	default:
		return []models.Booking{}, nil
	}
}

// GetAllForOwner lists bookings on any of the owner's items, filtered by
// state. Only users who own at least one item may query this.
func (s *BookingService) GetAllForOwner(ctx context.Context, ownerID int64, state models.StateFilter) ([]models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: owner bookings are available only to users owning at least one item", ErrValidation)
	}
	now := time.Now()

	switch state {
	case models.StateAll:
		return s.repo.GetBookingsByOwner(ctx, ownerID)
	case models.StateCurrent:
		return s.repo.GetCurrentBookingsByOwner(ctx, ownerID, now)
	case models.StatePast:
		return s.repo.GetPastBookingsByOwner(ctx, ownerID, now)
	case models.StateFuture:
		return s.repo.GetFutureBookingsByOwner(ctx, ownerID, now)
	case models.StateWaiting:
		return s.repo.GetBookingsByOwnerAndStatuses(ctx, ownerID, []models.Status{models.StatusWaiting})
	case models.StateRejected:
		return s.repo.GetBookingsByOwnerAndStatuses(ctx, ownerID, models.RejectedStatuses)
	default:
		return []models.Booking{}, nil
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, changedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ChangedBy: changedBy,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
