package api

import (
	"net/http"

	"github.com/alexanderramin/stagetrack/internal/contract"
)

func (s *Server) handleStageList(w http.ResponseWriter, r *http.Request) {
	stages, err := s.svc.Stages.ListWithTasks(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewStageResponses(stages))
}

func (s *Server) handleStageCreate(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateStageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	created, err := s.svc.Stages.Create(r.Context(), req.Stage(), req.Tasks)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, contract.NewStageResponse(created))
}

func (s *Server) handleStageUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	var req contract.UpdateStageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	changes, err := s.svc.Stages.Update(r.Context(), id, req.Patch())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ChangesResponse{Success: true, Changes: changes})
}

func (s *Server) handleStageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	changes, err := s.svc.Stages.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ChangesResponse{Success: true, Changes: changes})
}
