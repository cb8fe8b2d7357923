package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/repository"
	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParamLowercase(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		key         string
		expected    string
		nilRequest  bool
	}{
		{
			name:        "converts uppercase parameter to lowercase",
			queryParams: map[string]string{"policy": "CACHE_ONLY"},
			key:         "policy",
			expected:    "cache_only",
		},
		{
			name:        "converts mixed case parameter to lowercase",
			queryParams: map[string]string{"write_policy": "Write_Once"},
			key:         "write_policy",
			expected:    "write_once",
		},
		{
			name:        "returns empty string for missing parameter",
			queryParams: map[string]string{},
			key:         "missing",
			expected:    "",
		},
		{
			name:        "returns empty string for empty parameter value",
			queryParams: map[string]string{"empty": ""},
			key:         "empty",
			expected:    "",
		},
		{
			name:        "handles already lowercase parameter",
			queryParams: map[string]string{"policy": "readable_only"},
			key:         "policy",
			expected:    "readable_only",
		},
		{
			name:        "handles special characters and numbers",
			queryParams: map[string]string{"filter": "Test-123_ABC"},
			key:         "filter",
			expected:    "test-123_abc",
		},
		{
			name:        "returns empty string for nil request",
			queryParams: nil,
			key:         "any",
			expected:    "",
			nilRequest:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request

			if tt.nilRequest {
				req = nil
			} else {
				// Create a mock HTTP request with query parameters
				req = &http.Request{
					URL: &url.URL{},
				}
				q := req.URL.Query()
				for key, value := range tt.queryParams {
					q.Set(key, value)
				}
				req.URL.RawQuery = q.Encode()
			}

			result := getParamLowercase(req, tt.key)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSendJSONResponse(t *testing.T) {
	tests := []struct {
		name         string
		data         interface{}
		expectedJSON string
	}{
		{
			name:         "simple object",
			data:         map[string]string{"message": "hello"},
			expectedJSON: `{"message":"hello"}`,
		},
		{
			name:         "simple array",
			data:         []string{"a", "b", "c"},
			expectedJSON: `["a","b","c"]`,
		},
		{
			name:         "complex object",
			data:         map[string]interface{}{"count": 3, "items": []string{"x", "y"}},
			expectedJSON: `{"count":3,"items":["x","y"]}`,
		},
		{
			name:         "empty object",
			data:         map[string]interface{}{},
			expectedJSON: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &Server{}
			recorder := httptest.NewRecorder()

			server.sendJSONResponse(recorder, tt.data)

			// Check status code
			assert.Equal(t, http.StatusOK, recorder.Code)

			// Check content type
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

			// Check that response body doesn't end with newline
			body := recorder.Body.String()
			assert.Equal(t, tt.expectedJSON, body)
			assert.False(t, strings.HasSuffix(body, "\n"), "Response should not end with newline")

			// Check Content-Length header matches actual body length
			expectedLength := len(tt.expectedJSON)
			assert.Equal(t, expectedLength, recorder.Body.Len())

			// Check ETag header is set
			etag := recorder.Header().Get("ETag")
			assert.True(t, len(etag) > 0, "ETag header should be set")
			assert.True(t, strings.HasPrefix(etag, `"`), "ETag should start with quote")
			assert.True(t, strings.HasSuffix(etag, `"`), "ETag should end with quote")
		})
	}
}

func TestSendError(t *testing.T) {
	server := &Server{}
	recorder := httptest.NewRecorder()

	server.sendError(recorder, repository.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Empty(t, recorder.Header().Get("ETag"))
	assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: repository.ErrNotFound, expected: http.StatusNotFound},
		{name: "invalid input", err: invalidInput("bad"), expected: http.StatusBadRequest},
		{name: "configuration", err: repository.ErrNoSources, expected: http.StatusBadRequest},
		{name: "rate limit", err: platformerrors.New(platformerrors.CodeRateLimit, "slow down"), expected: http.StatusTooManyRequests},
		{name: "timeout", err: platformerrors.New(platformerrors.CodeTimeout, "timeout"), expected: http.StatusGatewayTimeout},
		{name: "unavailable", err: repository.ErrWriteFailed, expected: http.StatusBadGateway},
		{name: "plain error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}

func TestParseReadPolicy(t *testing.T) {
	tests := []struct {
		query    string
		expected repository.ReadPolicy
		wantErr  bool
	}{
		{query: "", expected: repository.ReadCacheAndReadable},
		{query: "policy=cache_only", expected: repository.ReadCacheOnly},
		{query: "policy=READABLE_ONLY", expected: repository.ReadReadableOnly},
		{query: "policy=cache_and_readable", expected: repository.ReadCacheAndReadable},
		{query: "policy=sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/records?"+tt.query, nil)
			policy, err := parseReadPolicy(req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
		})
	}
}

func TestParseWritePolicy(t *testing.T) {
	tests := []struct {
		query    string
		expected repository.WritePolicy
		wantErr  bool
	}{
		{query: "", expected: repository.WriteAll},
		{query: "write_policy=write_once", expected: repository.WriteOnce},
		{query: "write_policy=write_all_strict", expected: repository.WriteAllStrict},
		{query: "write_policy=never", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/records/a?"+tt.query, nil)
			policy, err := parseWritePolicy(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
		})
	}
}

func TestParsePage(t *testing.T) {
	limits := PageLimits{Default: 20, Max: 50}
	tests := []struct {
		query    string
		expected datasource.Page
		wantErr  bool
	}{
		{query: "offset=0", expected: datasource.Page{Offset: 0, Limit: 20}},
		{query: "offset=40&limit=10", expected: datasource.Page{Offset: 40, Limit: 10}},
		{query: "limit=500", expected: datasource.Page{Offset: 0, Limit: 50}},
		{query: "offset=-1", wantErr: true},
		{query: "offset=2147483647", expected: datasource.Page{Offset: 2147483647, Limit: 20}},
		{query: "offset=2147483648", wantErr: true},
		{query: "offset=9223372036854775807", wantErr: true},
		{query: "limit=0", wantErr: true},
		{query: "limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/records?"+tt.query, nil)
			page, err := parsePage(req, limits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page)
		})
	}
}
