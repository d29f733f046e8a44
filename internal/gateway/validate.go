package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LuckyFay12/shareit/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

type bookingBody struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type commentBody struct {
	Text string `json:"text"`
}

type requestBody struct {
	Description string `json:"description"`
}

func (g *Gateway) validateUserCreate(raw []byte) error {
	var body userBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return errors.New("user name must not be blank")
	}
	if body.Email == nil || strings.TrimSpace(*body.Email) == "" {
		return errors.New("user email must not be blank")
	}
	if !emailPattern.MatchString(*body.Email) {
		return errors.New("user email is malformed")
	}
	return nil
}

func (g *Gateway) validateUserPatch(raw []byte) error {
	var body userBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if body.Email != nil && !emailPattern.MatchString(*body.Email) {
		return errors.New("user email is malformed")
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return errors.New("user name must not be blank")
	}
	return nil
}

func (g *Gateway) validateItemCreate(raw []byte) error {
	var body itemBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return errors.New("item name must not be blank")
	}
	if body.Description == nil || strings.TrimSpace(*body.Description) == "" {
		return errors.New("item description must not be blank")
	}
	if body.Available == nil {
		return errors.New("item availability must be set")
	}
	if body.RequestID != nil && *body.RequestID <= 0 {
		return errors.New("requestId must be a positive integer")
	}
	return nil
}

func (g *Gateway) validateBookingCreate(raw []byte) error {
	var body bookingBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if body.ItemID <= 0 {
		return errors.New("itemId must be a positive integer")
	}
	if body.Start == nil || body.End == nil {
		return errors.New("booking start and end must be set")
	}
	if !body.End.After(*body.Start) {
		return errors.New("booking end must be after start")
	}
	if body.Start.Before(time.Now()) {
		return errors.New("booking start must not be in the past")
	}
	return nil
}

func (g *Gateway) validateComment(raw []byte) error {
	var body commentBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return errors.New("comment text must not be blank")
	}
	return nil
}

func (g *Gateway) validateRequestCreate(raw []byte) error {
	var body requestBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return errors.New("invalid JSON body")
	}
	if strings.TrimSpace(body.Description) == "" {
		return errors.New("request description must not be blank")
	}
	return nil
}

// validateState rejects unknown state filters at the edge. The backend
// tolerates unknown values, but callers get a clear error here.
func (g *Gateway) validateState(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("state")
	if _, ok := models.ParseStateFilter(raw); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown state: %s", raw))
		return
	}
	g.forward(w, r)
}

func (g *Gateway) validateApproveParam(w http.ResponseWriter, r *http.Request) {
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}
	g.forward(w, r)
}
