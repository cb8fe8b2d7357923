package e2etest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/haikuowuya/Rosie/api"
)

// MockServer is an in-memory records API that the remote data source talks to
type MockServer struct {
	server *httptest.Server

	mu       sync.RWMutex
	records  map[string]api.Record
	requests map[string]int
	failing  bool
}

// NewMockServer creates and starts a mock records API seeded with records
func NewMockServer(records ...api.Record) *MockServer {
	ms := &MockServer{
		records:  make(map[string]api.Record),
		requests: make(map[string]int),
	}
	for _, r := range records {
		ms.records[r.ID] = r
	}

	router := mux.NewRouter()
	router.Use(ms.countRequests)
	router.HandleFunc("/records", ms.handleList).Methods(http.MethodGet)
	router.HandleFunc("/records", ms.handleDeleteAll).Methods(http.MethodDelete)
	router.HandleFunc("/records/{id}", ms.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/records/{id}", ms.handlePut).Methods(http.MethodPut)
	router.HandleFunc("/records/{id}", ms.handleDelete).Methods(http.MethodDelete)

	ms.server = httptest.NewServer(router)
	return ms
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close shuts the mock server down
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetFailing makes every request answer 503 until reset
func (ms *MockServer) SetFailing(failing bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failing = failing
}

// Requests returns how many requests reached "METHOD path"
func (ms *MockServer) Requests(method, path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[method+" "+path]
}

// Record returns the record stored under id
func (ms *MockServer) Record(id string) (api.Record, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	r, ok := ms.records[id]
	return r, ok
}

func (ms *MockServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.mu.Lock()
		ms.requests[r.Method+" "+r.URL.Path]++
		failing := ms.failing
		ms.mu.Unlock()

		if failing {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ms *MockServer) sorted() []api.Record {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	records := make([]api.Record, 0, len(ms.records))
	for _, r := range ms.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

func (ms *MockServer) handleList(w http.ResponseWriter, r *http.Request) {
	records := ms.sorted()

	query := r.URL.Query()
	if !query.Has("offset") {
		writeJSON(w, records)
		return
	}

	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	end := offset + limit
	if offset > len(records) {
		offset = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	writeJSON(w, map[string]interface{}{
		"items":    records[offset:end],
		"has_more": end < len(records),
	})
}

func (ms *MockServer) handleGet(w http.ResponseWriter, r *http.Request) {
	record, ok := ms.Record(mux.Vars(r)["id"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, record)
}

func (ms *MockServer) handlePut(w http.ResponseWriter, r *http.Request) {
	var record api.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ms.mu.Lock()
	ms.records[mux.Vars(r)["id"]] = record
	ms.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (ms *MockServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	id := mux.Vars(r)["id"]
	if _, ok := ms.records[id]; !ok {
		http.NotFound(w, r)
		return
	}
	delete(ms.records, id)
	w.WriteHeader(http.StatusNoContent)
}

func (ms *MockServer) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.records = make(map[string]api.Record)
	ms.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
