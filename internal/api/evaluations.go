package api

import (
	"encoding/json"
	"net/http"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

const maxRequestBody = 4 << 20 // 4 MiB

// handleCreateEvaluation runs the full multi-agent evaluation on the
// posted candidate input and returns the consensus payload.
func (s *Server) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var input core.EvaluationInput
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondDomainError(s, w, core.ErrValidation(core.CodeInvalidInput, "request body must be valid JSON: "+err.Error()))
		return
	}

	summary, err := s.evaluator.Evaluate(r.Context(), input)
	if err != nil {
		respondDomainError(s, w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, summary)
}

// handleGetCosts returns accumulated token usage and estimated spend.
func (s *Server) handleGetCosts(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.costs.Snapshot())
}
