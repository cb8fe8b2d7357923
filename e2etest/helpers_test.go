package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// doRequest sends a request to the service and returns status and body
func doRequest(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Should be able to make a request to %s", url)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")
	return resp.StatusCode, data
}

// getJSON sends a GET request and decodes a 200 response into out
func getJSON(t *testing.T, url string, out interface{}) {
	t.Helper()

	status, body := doRequest(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, status, "unexpected status for %s: %s", url, body)
	require.NoError(t, json.Unmarshal(body, out), "Response should be valid JSON")
}
