package models

// Status is the booking lifecycle state.
//
// WAITING is the only non-terminal state. The owner moves a booking to
// APPROVED or REJECTED; the booker may move it to CANCELED while it is
// still waiting. CANCELED is grouped with REJECTED in listing queries.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// RejectedStatuses is the status group matched by the REJECTED state filter.
var RejectedStatuses = []Status{StatusRejected, StatusCanceled}

// StateFilter selects which temporal/status subset of bookings a listing
// query returns.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
)

// ParseStateFilter reports whether the raw value names a known filter.
// An empty value defaults to ALL, matching the HTTP query parameter default.
func ParseStateFilter(raw string) (StateFilter, bool) {
	if raw == "" {
		return StateAll, true
	}
	switch StateFilter(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return StateFilter(raw), true
	}
	return "", false
}

const (
	// HeaderUserID carries the caller identity resolved by the HTTP layer.
	HeaderUserID = "X-Sharer-User-Id"

	// DefaultCacheTTL время жизни кэшированных представлений вещей
	DefaultCacheTTL = 5 * 60 // 5 минут в секундах
)
