package core

import (
	"context"
	"fmt"
	"log"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry manages all services
type Registry struct {
	services []Interface
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register adds a service to the registry. Services start in registration
// order and stop in reverse order.
func (sr *Registry) Register(service Interface) {
	sr.services = append(sr.services, service)
}

// StartAll starts all registered services. If one fails, the services
// already started are stopped again in reverse order.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, service := range sr.services {
		if err := service.Start(ctx); err != nil {
			log.Printf("Registry: service %d/%d (%T) failed to start: %v", i+1, len(sr.services), service, err)
			for j := i - 1; j >= 0; j-- {
				sr.services[j].Stop()
			}
			return fmt.Errorf("failed to start %T: %w", service, err)
		}
	}
	return nil
}

// StopAll stops all registered services
func (sr *Registry) StopAll() {
	// Stop in reverse order
	for i := len(sr.services) - 1; i >= 0; i-- {
		sr.services[i].Stop()
	}
}
