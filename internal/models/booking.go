package models

import "time"

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Status   Status    `json:"status"`
}

// IsFinished reports whether the rental is over at the given instant.
func (b *Booking) IsFinished(now time.Time) bool {
	return !b.End.After(now)
}

// BookingShortInfo is the booking summary embedded into an owner's item view.
type BookingShortInfo struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// BookingDraft is what arrives from the client on creation; everything else
// (booker, status) is assigned by the booking service.
type BookingDraft struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
