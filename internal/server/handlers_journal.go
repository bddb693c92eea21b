package server

import (
	"net/http"

	"github.com/jonathan/studygram/internal/types"
)

// handleListJournal returns the user's journal, newest first
func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	entries, err := s.service.ListJournalEntries(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entries)
}

func (s *Server) handleCreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.CreateJournalEntryRequest
	if err := decodeJSON(w, r, maxJSONBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := s.service.AddJournalEntry(r.Context(), userID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.service.DeleteJournalEntry(r.Context(), userID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDashboard returns the overview counters
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	dash, err := s.service.Dashboard(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dash)
}

// handleActivity returns the recent-activity feed
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	feed, err := s.service.RecentActivity(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, feed)
}
