package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/haikuowuya/Rosie/repository"
)

const maxRecordBodyBytes = 1 << 20

// writeResponse reports which sources a write or delete reached
type writeResponse struct {
	Attempted []string `json:"attempted"`
	Failed    []string `json:"failed,omitempty"`
}

func newWriteResponse(result repository.WriteResult) writeResponse {
	return writeResponse{
		Attempted: result.Attempted(),
		Failed:    result.FailedSources(),
	}
}

// handleGetRecord serves GET /api/v1/records/{id}?policy=
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	policy, err := parseReadPolicy(r)
	if err != nil {
		s.sendError(w, err)
		return
	}

	record, found, err := s.records.GetByKey(r.Context(), mux.Vars(r)["id"], policy)
	if err != nil {
		s.sendError(w, err)
		return
	}
	if !found {
		s.sendError(w, repository.ErrNotFound)
		return
	}

	s.sendJSONResponse(w, record)
}

// handleListRecords serves GET /api/v1/records. With offset or limit it
// returns one page, otherwise every record.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	policy, err := parseReadPolicy(r)
	if err != nil {
		s.sendError(w, err)
		return
	}

	query := r.URL.Query()
	if !query.Has("offset") && !query.Has("limit") {
		records, err := s.records.GetAll(r.Context(), policy)
		if err != nil {
			s.sendError(w, err)
			return
		}
		s.sendJSONResponse(w, records)
		return
	}

	page, err := parsePage(r, s.limits)
	if err != nil {
		s.sendError(w, err)
		return
	}

	collection, found, err := s.records.GetPage(r.Context(), page, policy)
	if err != nil {
		s.sendError(w, err)
		return
	}
	if !found {
		s.sendError(w, repository.ErrNotFound)
		return
	}

	s.sendJSONResponse(w, collection)
}

// handlePutRecord serves PUT /api/v1/records/{id}?write_policy=. The body
// is stored as the record data.
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	policy, err := parseWritePolicy(r)
	if err != nil {
		s.sendError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRecordBodyBytes))
	if err != nil {
		s.sendError(w, invalidInput("failed to read body: %v", err))
		return
	}
	if !json.Valid(body) {
		s.sendError(w, invalidInput("body must be a JSON document"))
		return
	}

	record := Record{ID: mux.Vars(r)["id"], Data: json.RawMessage(body)}
	result, err := s.records.AddOrUpdate(r.Context(), record, policy)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.sendJSONResponse(w, newWriteResponse(result))
}

// handleDeleteRecord serves DELETE /api/v1/records/{id}
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	result, err := s.records.DeleteByKey(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.sendJSONResponse(w, newWriteResponse(result))
}

// handleDeleteAllRecords serves DELETE /api/v1/records
func (s *Server) handleDeleteAllRecords(w http.ResponseWriter, r *http.Request) {
	result, err := s.records.DeleteAll(r.Context())
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.sendJSONResponse(w, newWriteResponse(result))
}
