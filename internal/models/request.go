package models

import "time"

// ItemRequest is a wish posted by a user; items may be listed in answer to it.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}

// ItemRequestView is a single request together with the items answering it.
type ItemRequestView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
