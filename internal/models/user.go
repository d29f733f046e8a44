package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch carries a partial update: nil fields keep their stored value.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
