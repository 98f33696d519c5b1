package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/coin-ticker/config"
)

// TestStatsToken is written to the tokens file and expected on stats requests
const TestStatsToken = "test-stats-token"

// createTestConfig writes a config and tokens file pointing every source at mockURL
func createTestConfig(mockURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "coin-ticker-test")
	if err != nil {
		return "", err
	}

	configContent := `
markets:
  per_page: 2
  page_from: 1
  page_to: 3              # page 3 is empty on the mock, paging stops there
  request_delay: 10ms     # short delay for tests
  max_retries: 1

aux_asset:
  id: "aux:kwe"
  name: "KWE"
  symbol: "kwe"
  declared_rank: 3
  price_url: "%s%s"
  stats_url: "%s%s"
  timeout: 2s

refresh:
  interval: 100ms         # fast refresh for tests

rate_limits:
  nokey:
    per_minute: 60000     # the mock counts as a CoinGecko host
    burst: 10

cache:
  enabled: true
  ttl: 1m
  cleanup_interval: 1m

tokens_file: "%s"

override_coingecko_public_url: "%s"
override_coingecko_pro_url: "%s"
`

	tokensFilePath := filepath.Join(tempDir, "tokens.json")
	tokensContent := fmt.Sprintf(`{"api_tokens": [], "stats_token": %q}`, TestStatsToken)
	if err := os.WriteFile(tokensFilePath, []byte(tokensContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	configContent = fmt.Sprintf(configContent,
		mockURL, PricePath,
		mockURL, StatsPath,
		tokensFilePath,
		mockURL, mockURL)

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
