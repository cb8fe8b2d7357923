package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/haikuowuya/Rosie/config"
)

// createTestConfig writes a configuration pointing the remote source at
// mockURL and returns the path to the file
func createTestConfig(mockURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "rosie-test")
	if err != nil {
		return "", err
	}

	configContent := fmt.Sprintf(`
server:
  default_page_limit: 2
  max_page_limit: 10

cache:
  ttl: 1m
  eviction:
    mode: sweep          # exercise the sweeper in tests
    interval: 100ms
  go_cache:
    enabled: true
    cleanup_interval: 1m
  ristretto:
    enabled: true
    max_items: 1000

remote:
  enabled: true
  name: records-api
  base_url: "%s/records"
  retry:
    max_retries: 2
    base_backoff: 10ms   # short backoff for tests
    connection_timeout: 1s
    request_timeout: 2s

repository:
  name: records
  read_coalescing: true
`, mockURL)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
