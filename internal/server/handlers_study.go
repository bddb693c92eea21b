package server

import (
	"net/http"

	"github.com/jonathan/studygram/internal/types"
)

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	subjects, err := s.service.ListSubjects(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, subjects)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.CreateSubjectRequest
	if err := decodeJSON(w, r, maxJSONBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	subject, err := s.service.CreateSubject(r.Context(), userID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, subject)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.service.DeleteSubject(r.Context(), userID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	subjectID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req types.CreateChapterRequest
	if err := decodeJSON(w, r, maxJSONBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	chapter, err := s.service.AddChapter(r.Context(), userID, subjectID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, chapter)
}

func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	subjectID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	chapterID, ok := s.pathID(w, r, "chapter_id")
	if !ok {
		return
	}
	if err := s.service.DeleteChapter(r.Context(), userID, subjectID, chapterID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	chapterID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req types.CreateTopicRequest
	if err := decodeJSON(w, r, maxJSONBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	topic, err := s.service.AddTopic(r.Context(), userID, chapterID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, topic)
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	topicID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req types.UpdateTopicRequest
	if err := decodeJSON(w, r, maxJSONBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	topic, err := s.service.UpdateTopic(r.Context(), userID, topicID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	topicID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.service.DeleteTopic(r.Context(), userID, topicID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
