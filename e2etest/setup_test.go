package e2etest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/haikuowuya/Rosie/api"
	"github.com/haikuowuya/Rosie/core"
)

const testPort = "8081"

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	MockServer    *MockServer
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// seedRecords are served by the mock remote API
func seedRecords() []api.Record {
	records := make([]api.Record, 0, 5)
	for i := 1; i <= 5; i++ {
		records = append(records, api.Record{
			ID:   fmt.Sprintf("rec-%d", i),
			Data: json.RawMessage(fmt.Sprintf(`{"n":%d}`, i)),
		})
	}
	return records
}

// SetupTest sets up the test environment
func SetupTest(t *testing.T) *TestEnv {
	ctx, cancel := context.WithCancel(context.Background())

	mockServer := NewMockServer(seedRecords()...)

	t.Setenv("PORT", testPort)
	cfg, configPath, err := loadTestConfig(mockServer.GetURL())
	if err != nil {
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		cleanupTestConfig(configPath)
		mockServer.Close()
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	env := &TestEnv{
		Registry:      registry,
		MockServer:    mockServer,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: fmt.Sprintf("http://localhost:%s", testPort),
	}

	if !waitForServer(env.ServerBaseURL, 5*time.Second) {
		env.TearDown()
		t.Fatalf("Server not responding on %s", env.ServerBaseURL)
	}

	return env
}

// waitForServer polls /health until the server answers 200 or the timeout passes
func waitForServer(baseURL string, maxWait time.Duration) bool {
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
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
