package models

import "time"

type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"itemId"`
	AuthorID int64     `json:"authorId"`
	Created  time.Time `json:"created"`
}

// CommentView annotates a comment with the author and item names for
// response shaping. The names are joined on read, not stored.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	ItemName   string    `json:"itemName"`
	Created    time.Time `json:"created"`
}
