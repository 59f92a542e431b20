package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/stagetrack/internal/contract"
	"github.com/alexanderramin/stagetrack/internal/importer"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats.Compute(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewStatsResponse(stats))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Transfer.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contract.ExportFileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("write export", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	doc, err := importer.Parse(raw)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	n, err := s.svc.Transfer.Import(r.Context(), doc)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ImportResponse{Success: true, Imported: n})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Transfer.Reset(r.Context()); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.ResetResponse{Success: true, Message: contract.ResetMessage})
}
