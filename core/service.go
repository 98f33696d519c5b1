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
	started  int
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register adds a core to the registry
func (sr *Registry) Register(service Interface) {
	sr.services = append(sr.services, service)
}

// StartAll starts services in registration order. When one fails, the ones
// already started are stopped again and the error is returned.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, service := range sr.services {
		if err := service.Start(ctx); err != nil {
			log.Printf("Registry: Service %d (%T) failed to start: %v", i, service, err)
			sr.stopStarted()
			return fmt.Errorf("start %T: %w", service, err)
		}
		sr.started = i + 1
	}
	return nil
}

// StopAll stops started services in reverse order
func (sr *Registry) StopAll() {
	sr.stopStarted()
}

func (sr *Registry) stopStarted() {
	for i := sr.started - 1; i >= 0; i-- {
		sr.services[i].Stop()
	}
	sr.started = 0
}
