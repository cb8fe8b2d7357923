package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/haikuowuya/Rosie/cache"
	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RecordStore is the repository surface served by the HTTP handlers
type RecordStore interface {
	GetByKey(ctx context.Context, key string, policy ...repository.ReadPolicy) (Record, bool, error)
	GetAll(ctx context.Context, policy ...repository.ReadPolicy) ([]Record, error)
	GetPage(ctx context.Context, page datasource.Page, policy ...repository.ReadPolicy) (datasource.PaginatedCollection[Record], bool, error)
	AddOrUpdate(ctx context.Context, value Record, policy ...repository.WritePolicy) (repository.WriteResult, error)
	DeleteByKey(ctx context.Context, key string) (repository.WriteResult, error)
	DeleteAll(ctx context.Context) (repository.WriteResult, error)
}

// CacheStats reports the state of the cache layer for health checks
type CacheStats interface {
	Stats() cache.ServiceStats
}

// PageLimits bounds the page sizes clients may request
type PageLimits struct {
	Default int
	Max     int
}

type Server struct {
	port       string
	records    RecordStore
	cacheStats CacheStats
	limits     PageLimits
	server     *http.Server
}

func New(port string, records RecordStore, cacheStats CacheStats, limits PageLimits) *Server {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}
	return &Server{
		port:       port,
		records:    records,
		cacheStats: cacheStats,
		limits:     limits,
	}
}

// Handler returns the router serving every endpoint
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/records", s.handleListRecords).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/records", s.handleDeleteAllRecords).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/records/{id}", s.handleGetRecord).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/records/{id}", s.handlePutRecord).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/records/{id}", s.handleDeleteRecord).Methods(http.MethodDelete)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
