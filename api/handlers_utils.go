package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/repository"
	platformerrors "github.com/jmgilman/go/errors"
)

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONWithStatus(w, http.StatusOK, data, true)
}

// sendError writes err as a JSON error body with a status derived from its code
func (s *Server) sendError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("API: request failed: %v", err)
	}
	s.sendJSONWithStatus(w, status, platformerrors.ToJSON(err), false)
}

func (s *Server) sendJSONWithStatus(w http.ResponseWriter, status int, data interface{}, withETag bool) {
	// Marshal the data to calculate content length and ETag
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	if withETag {
		hash := md5.Sum(responseBytes)
		w.Header().Set("ETag", "\""+hex.EncodeToString(hash[:])+"\"")
	}
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

func statusForError(err error) int {
	switch platformerrors.GetCode(err) {
	case platformerrors.CodeNotFound:
		return http.StatusNotFound
	case platformerrors.CodeInvalidInput, platformerrors.CodeInvalidConfig:
		return http.StatusBadRequest
	case platformerrors.CodeRateLimit:
		return http.StatusTooManyRequests
	case platformerrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case platformerrors.CodeUnavailable, platformerrors.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func invalidInput(format string, args ...interface{}) error {
	return platformerrors.New(platformerrors.CodeInvalidInput, fmt.Sprintf(format, args...))
}

func getParamLowercase(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	value := r.URL.Query().Get(key)
	if value != "" {
		return strings.ToLower(value)
	}
	return ""
}

// parseReadPolicy reads the policy query parameter, defaulting to cache_and_readable
func parseReadPolicy(r *http.Request) (repository.ReadPolicy, error) {
	value := getParamLowercase(r, "policy")
	if value == "" {
		return repository.ReadCacheAndReadable, nil
	}
	for _, p := range []repository.ReadPolicy{repository.ReadCacheAndReadable, repository.ReadCacheOnly, repository.ReadReadableOnly} {
		if p.String() == value {
			return p, nil
		}
	}
	return 0, invalidInput("unknown read policy %q", value)
}

// parseWritePolicy reads the write_policy query parameter, defaulting to write_all
func parseWritePolicy(r *http.Request) (repository.WritePolicy, error) {
	value := getParamLowercase(r, "write_policy")
	if value == "" {
		return repository.WriteAll, nil
	}
	for _, p := range []repository.WritePolicy{repository.WriteAll, repository.WriteOnce, repository.WriteAllStrict} {
		if p.String() == value {
			return p, nil
		}
	}
	return 0, invalidInput("unknown write policy %q", value)
}

// maxPageOffset bounds the offset a client may request
const maxPageOffset = math.MaxInt32

// parsePage reads offset and limit, applying the server's page limits
func parsePage(r *http.Request, limits PageLimits) (datasource.Page, error) {
	page := datasource.Page{Offset: 0, Limit: limits.Default}

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return page, invalidInput("offset must be a non-negative integer, got %q", v)
		}
		if offset > maxPageOffset {
			return page, invalidInput("offset must not exceed %d, got %q", maxPageOffset, v)
		}
		page.Offset = offset
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return page, invalidInput("limit must be a positive integer, got %q", v)
		}
		if limit > limits.Max {
			limit = limits.Max
		}
		page.Limit = limit
	}
	return page, nil
}
