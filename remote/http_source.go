package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/metrics"
	platformerrors "github.com/jmgilman/go/errors"
)

// pageResponse is the wire format of a paginated listing
type pageResponse[V any] struct {
	Items   []V  `json:"items"`
	HasMore bool `json:"has_more"`
}

// HTTPDataSource is a readable, writeable and paginated data source backed
// by a JSON HTTP API:
//
//	GET    {base}/{key}                   value, 404 when missing
//	GET    {base}                         all values
//	GET    {base}?offset={o}&limit={l}    {"items": [...], "has_more": bool}
//	PUT    {base}/{key}                   add or update
//	DELETE {base}/{key}                   delete one
//	DELETE {base}                         delete all
type HTTPDataSource[K comparable, V any] struct {
	name    string
	baseURL *url.URL
	client  *HTTPClientWithRetries
	keyFunc datasource.KeyFunc[K, V]
	auth    AuthConfig
	apiKeys IAPIKeyManager
}

// NewHTTPDataSource creates a source for the API at cfg.BaseURL
func NewHTTPDataSource[K comparable, V any](cfg Config, keyFunc datasource.KeyFunc[K, V]) (*HTTPDataSource[K, V], error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	name := cfg.Name
	if name == "" {
		name = "remote"
	}
	opts := cfg.Retry
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	opts.LogPrefix = "RemoteSource(" + name + ")"

	client := NewHTTPClientWithRetries(opts, metrics.NewRemoteStatusHandler(name), NewRateLimiterManager(cfg.RateLimit))

	return &HTTPDataSource[K, V]{
		name:    name,
		baseURL: base,
		client:  client,
		keyFunc: keyFunc,
		auth:    cfg.Auth,
		apiKeys: NewAPIKeyManager(cfg.Auth, nil),
	}, nil
}

// Name returns the source name
func (s *HTTPDataSource[K, V]) Name() string {
	return s.name
}

// GetByKey fetches one value. A 404 response means the value does not exist.
func (s *HTTPDataSource[K, V]) GetByKey(ctx context.Context, key K) (V, bool, error) {
	var value V
	body, err := s.do(ctx, http.MethodGet, s.keyURL(key), nil)
	if err != nil {
		if isNotFound(err) {
			return value, false, nil
		}
		return value, false, s.wrap("get", err)
	}
	if err := json.Unmarshal(body, &value); err != nil {
		return value, false, s.wrap("get", fmt.Errorf("failed to decode value: %w", err))
	}
	return value, true, nil
}

// GetAll fetches every value
func (s *HTTPDataSource[K, V]) GetAll(ctx context.Context) ([]V, error) {
	body, err := s.do(ctx, http.MethodGet, s.baseURL.String(), nil)
	if err != nil {
		return nil, s.wrap("get_all", err)
	}
	var values []V
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, s.wrap("get_all", fmt.Errorf("failed to decode values: %w", err))
	}
	if values == nil {
		values = []V{}
	}
	return values, nil
}

// GetPage fetches one window of values
func (s *HTTPDataSource[K, V]) GetPage(ctx context.Context, page datasource.Page) (datasource.PaginatedCollection[V], error) {
	u := *s.baseURL
	query := u.Query()
	query.Set("offset", strconv.Itoa(page.Offset))
	query.Set("limit", strconv.Itoa(page.Limit))
	u.RawQuery = query.Encode()

	body, err := s.do(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return datasource.PaginatedCollection[V]{}, s.wrap("get_page", err)
	}
	var resp pageResponse[V]
	if err := json.Unmarshal(body, &resp); err != nil {
		return datasource.PaginatedCollection[V]{}, s.wrap("get_page", fmt.Errorf("failed to decode page: %w", err))
	}
	return datasource.NewPaginatedCollection(page, resp.Items, resp.HasMore), nil
}

// AddOrUpdate stores value under its key
func (s *HTTPDataSource[K, V]) AddOrUpdate(ctx context.Context, value V) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if _, err := s.do(ctx, http.MethodPut, s.keyURL(s.keyFunc(value)), payload); err != nil {
		return s.wrap("add_or_update", err)
	}
	return nil
}

// DeleteByKey deletes one value. Deleting a missing value succeeds.
func (s *HTTPDataSource[K, V]) DeleteByKey(ctx context.Context, key K) error {
	if _, err := s.do(ctx, http.MethodDelete, s.keyURL(key), nil); err != nil && !isNotFound(err) {
		return s.wrap("delete", err)
	}
	return nil
}

// DeleteAll deletes every value
func (s *HTTPDataSource[K, V]) DeleteAll(ctx context.Context) error {
	if _, err := s.do(ctx, http.MethodDelete, s.baseURL.String(), nil); err != nil {
		return s.wrap("delete_all", err)
	}
	return nil
}

// do sends the request with each available API key in turn until one is
// not rejected by the remote API
func (s *HTTPDataSource[K, V]) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var lastErr error
	for _, key := range s.apiKeys.GetAvailableKeys() {
		respBody, err := s.send(ctx, method, target, payload, key)
		if err == nil || key == "" || !isKeyRejected(err) {
			return respBody, err
		}
		s.apiKeys.MarkKeyAsFailed(key)
		lastErr = err
	}
	return nil, lastErr
}

func (s *HTTPDataSource[K, V]) send(ctx context.Context, method, target string, payload []byte, apiKey string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		s.setAuth(req, apiKey)
	}

	start := time.Now()
	_, respBody, _, err := s.client.ExecuteRequest(req)
	metrics.RecordRemoteRequest(s.name, method, time.Since(start))
	return respBody, err
}

func (s *HTTPDataSource[K, V]) setAuth(req *http.Request, apiKey string) {
	header := s.auth.Header
	if header == "" {
		header = "Authorization"
	}
	value := apiKey
	if s.auth.Scheme != "" {
		value = s.auth.Scheme + " " + apiKey
	}
	req.Header.Set(header, value)
}

func (s *HTTPDataSource[K, V]) keyURL(key K) string {
	segment := fmt.Sprint(key)
	u := *s.baseURL
	u.RawPath = strings.TrimSuffix(s.baseURL.EscapedPath(), "/") + "/" + url.PathEscape(segment)
	u.Path = strings.TrimSuffix(s.baseURL.Path, "/") + "/" + segment
	return u.String()
}

// wrap classifies err so callers can tell retryable failures apart
func (s *HTTPDataSource[K, V]) wrap(operation string, err error) error {
	return platformerrors.WrapWithContext(err, errorCode(err), fmt.Sprintf("%s %s failed", s.name, operation),
		map[string]interface{}{
			"source":   s.name,
			"base_url": s.baseURL.String(),
		})
}

func errorCode(err error) platformerrors.ErrorCode {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return platformerrors.CodeRateLimit
		case statusErr.StatusCode >= 500:
			return platformerrors.CodeUnavailable
		case statusErr.StatusCode == http.StatusUnauthorized:
			return platformerrors.CodeUnauthorized
		case statusErr.StatusCode == http.StatusForbidden:
			return platformerrors.CodeForbidden
		case statusErr.StatusCode == http.StatusConflict:
			return platformerrors.CodeConflict
		default:
			return platformerrors.CodeInvalidInput
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return platformerrors.CodeTimeout
	}
	return platformerrors.CodeNetwork
}

// isKeyRejected reports whether the remote API refused the key used
func isKeyRejected(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	}
	return false
}

func isNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
