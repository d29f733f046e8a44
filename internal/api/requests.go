package api

import (
	"net/http"

	"github.com/LuckyFay12/shareit/internal/models"
)

type itemRequestBody struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body itemRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := s.requests.Create(r.Context(), userID, body.Description)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleGetUserRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetUserRequests(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetAllRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.GetAllRequests(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.requests.GetByID(r.Context(), userID, requestID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
