package api

import (
	"net/http"
	"strconv"

	"github.com/LuckyFay12/shareit/internal/models"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var draft models.BookingDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Create(r.Context(), bookerID, draft)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.bookings.Approve(r.Context(), bookingID, userID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	viewerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), bookingID, viewerID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, _ := models.ParseStateFilter(r.URL.Query().Get("state"))

	bookings, err := s.bookings.GetAll(r.Context(), bookerID, state)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleGetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, _ := models.ParseStateFilter(r.URL.Query().Get("state"))

	bookings, err := s.bookings.GetAllForOwner(r.Context(), ownerID, state)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
