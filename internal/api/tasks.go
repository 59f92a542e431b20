package api

import (
	"net/http"

	"github.com/alexanderramin/stagetrack/internal/contract"
)

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	stageID, ok := s.pathID(w, r, "stageId")
	if !ok {
		return
	}
	var req contract.TaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	task, err := s.svc.Tasks.Add(r.Context(), stageID, req.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, contract.NewTaskResponse(task))
}

func (s *Server) handleTaskToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	_, completed, err := s.svc.Tasks.Toggle(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ToggleResponse{Success: true, Completed: completed})
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req contract.TaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if _, err := s.svc.Tasks.UpdateText(r.Context(), id, req.Text); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.SuccessResponse{Success: true})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	changes, err := s.svc.Tasks.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ChangesResponse{Success: true, Changes: changes})
}
