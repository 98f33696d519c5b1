package core

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// recordingService records start and stop calls into a shared log
type recordingService struct {
	id       string
	startErr error
	log      *callLog
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (s *recordingService) Start(ctx context.Context) error {
	s.log.add("start:" + s.id)
	return s.startErr
}

func (s *recordingService) Stop() {
	s.log.add("stop:" + s.id)
}

func equalCalls(t *testing.T, expected, got []string) {
	t.Helper()
	if len(expected) != len(got) {
		t.Fatalf("Expected calls %v, got %v", expected, got)
	}
	for i := range expected {
		if expected[i] != got[i] {
			t.Fatalf("Expected calls %v, got %v", expected, got)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("Expected registry to be created, got nil")
	}
	if len(registry.services) != 0 {
		t.Errorf("Expected empty services slice, got %d services", len(registry.services))
	}
}

func TestStartAllThenStopAllInReverseOrder(t *testing.T) {
	log := &callLog{}
	registry := NewRegistry()
	registry.Register(&recordingService{id: "cache", log: log})
	registry.Register(&recordingService{id: "board", log: log})
	registry.Register(&recordingService{id: "server", log: log})

	if err := registry.StartAll(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	registry.StopAll()

	equalCalls(t, []string{
		"start:cache", "start:board", "start:server",
		"stop:server", "stop:board", "stop:cache",
	}, log.get())
}

func TestStartAllRollsBackOnError(t *testing.T) {
	log := &callLog{}
	expectedErr := errors.New("listen failed")

	registry := NewRegistry()
	registry.Register(&recordingService{id: "cache", log: log})
	registry.Register(&recordingService{id: "board", log: log})
	registry.Register(&recordingService{id: "server", log: log, startErr: expectedErr})

	err := registry.StartAll(context.Background())
	if !errors.Is(err, expectedErr) {
		t.Fatalf("Expected error wrapping %v, got %v", expectedErr, err)
	}

	equalCalls(t, []string{
		"start:cache", "start:board", "start:server",
		"stop:board", "stop:cache",
	}, log.get())

	registry.StopAll()
	if len(log.get()) != 5 {
		t.Errorf("Expected no further stops after rollback, got %v", log.get())
	}
}

func TestStopAllWithoutStart(t *testing.T) {
	log := &callLog{}
	registry := NewRegistry()
	registry.Register(&recordingService{id: "cache", log: log})

	registry.StopAll()

	if len(log.get()) != 0 {
		t.Errorf("Expected no calls, got %v", log.get())
	}
}
