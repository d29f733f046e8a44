package domain

import (
	"context"
	"time"

	"github.com/LuckyFay12/shareit/internal/models"
)

// Repository is the persistence contract the services are written against.
// *database.DB satisfies it; tests may substitute an in-memory fake.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]models.User, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusFrom(ctx context.Context, id int64, from, to models.Status) error
	GetBookingsByBooker(ctx context.Context, bookerID int64) ([]models.Booking, error)
	GetCurrentBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error)
	GetPastBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error)
	GetFutureBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error)
	GetBookingsByBookerAndStatuses(ctx context.Context, bookerID int64, statuses []models.Status) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64) ([]models.Booking, error)
	GetCurrentBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error)
	GetPastBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error)
	GetFutureBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error)
	GetBookingsByOwnerAndStatuses(ctx context.Context, ownerID int64, statuses []models.Status) ([]models.Booking, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time, statuses []models.Status) (*models.Booking, error)
	GetLastBooking(ctx context.Context, itemID int64, now time.Time, statuses []models.Status) (*models.Booking, error)
	GetBookingsByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentViewsByItem(ctx context.Context, itemID int64) ([]models.CommentView, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	GetOtherUsersRequests(ctx context.Context, userID int64) ([]models.ItemRequest, error)
}

// ViewCache stores serialized read models. Misses and failures are not
// errors the caller acts on; writes are best-effort.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// EventPublisher delivers domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
