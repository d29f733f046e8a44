package api

import (
	"net/http"

	"github.com/LuckyFay12/shareit/internal/models"
)

type commentRequest struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var item models.Item
	if err := decodeBody(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.items.Create(r.Context(), ownerID, &item)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var patch models.ItemPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Update(r.Context(), userID, itemID, patch)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	viewerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.items.GetByID(r.Context(), viewerID, itemID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetUserItems(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.GetUserItems(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := s.items.AddComment(r.Context(), authorID, itemID, req.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *HTTPServer) handleListComments(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := s.items.ListComments(r.Context(), itemID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if comments == nil {
		comments = []models.CommentView{}
	}
	writeJSON(w, http.StatusOK, comments)
}
