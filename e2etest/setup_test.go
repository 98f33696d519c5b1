package e2etest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/status-im/coin-ticker/config"
	"github.com/status-im/coin-ticker/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	Components    *core.Components
	MockServer    *MockServer
	Config        *config.Config
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest starts the full service against a mock upstream.
// prepare runs before services start so tests can shape the upstream.
func SetupTest(t *testing.T, prepare ...func(*MockServer)) *TestEnv {
	t.Setenv(config.StatsTokenEnv, "")

	ctx, cancel := context.WithCancel(context.Background())

	mockServer := NewMockServer()
	for _, fn := range prepare {
		fn(mockServer)
	}

	cfg, configPath, err := loadTestConfig(mockServer.GetURL())
	if err != nil {
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	testPort, err := freePort()
	if err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to pick a port: %v", err)
	}

	registry, components := core.Setup(cfg, testPort)

	if err := registry.StartAll(ctx); err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	env := &TestEnv{
		Registry:      registry,
		Components:    components,
		MockServer:    mockServer,
		Config:        cfg,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: fmt.Sprintf("http://localhost:%s", testPort),
	}

	if err := waitForServer(env.ServerBaseURL, 5*time.Second); err != nil {
		env.TearDown()
		t.Fatalf("Server not responding: %v", err)
	}

	return env
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.Registry != nil {
		env.Registry.StopAll()
	}
	if env.MockServer != nil {
		env.MockServer.Close()
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
	}
}

func freePort() (string, error) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()

	_, port, err := net.SplitHostPort(listener.Addr().String())
	return port, err
}

func waitForServer(baseURL string, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	var lastErr error
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = fmt.Errorf("unexpected status: %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(50 * time.Millisecond)
	}
	return lastErr
}
