package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemPatch carries a partial update: nil fields keep their stored value.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemView is the read model for a single item: comments are always
// attached, booking summaries only when the viewer owns the item.
type ItemView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     int64             `json:"ownerId"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShortInfo `json:"lastBooking,omitempty"`
	NextBooking *BookingShortInfo `json:"nextBooking,omitempty"`
	Comments    []CommentView     `json:"comments"`
}
