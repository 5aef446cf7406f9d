package untappd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"droscher.com/OnTap/configs"
)

const (
	requestTimeout = 30 * time.Second
	locationTTL    = time.Hour
	cachePrefix    = "ontap:untappd:"
)

// Cache is the response cache consulted before any network call. A nil
// cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
}

// APIError carries the upstream message and HTTP status for any failed
// call, including transport-level failures (Status 0).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("untappd request failed: %s", e.Message)
	}

	return fmt.Sprintf("untappd request failed with status %d: %s", e.Status, e.Message)
}

// Client talks to the Untappd Business API with HTTP Basic auth
// (base64 of email:token). It never retries; retry policy belongs to the
// caller or scheduler.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	cache      Cache
	menuTTL    time.Duration
	logger     *zap.Logger
}

func NewClient(conf *configs.Config, cache Cache, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    conf.Untappd.BaseURL,
		email:      conf.Untappd.Email,
		token:      conf.Untappd.APIToken,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
		menuTTL:    time.Duration(conf.Untappd.CacheDuration) * time.Second,
		logger:     logger,
	}
}

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.email+":"+c.token))
}

func (c *Client) request(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: upstreamError(body)}
	}

	return body, nil
}

// cachedRequest returns the cached body for key when present, otherwise
// performs the request and stores the result.
func (c *Client) cachedRequest(ctx context.Context, key string, path string, ttl time.Duration) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug("untappd cache hit", zap.String("key", key))

			return body, nil
		}
	}

	body, err := c.request(ctx, path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, body, ttl)
	}

	return body, nil
}

func (c *Client) GetLocations(ctx context.Context) ([]Location, error) {
	body, err := c.cachedRequest(ctx, cachePrefix+"locations:"+c.email, "/locations", locationTTL)
	if err != nil {
		return nil, err
	}

	var response struct {
		Locations []Location `json:"locations"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	return response.Locations, nil
}

func (c *Client) GetMenus(ctx context.Context, locationID uint64) ([]MenuSummary, error) {
	path := fmt.Sprintf("/locations/%d/menus", locationID)

	body, err := c.cachedRequest(ctx, fmt.Sprintf("%smenus:%d", cachePrefix, locationID), path, locationTTL)
	if err != nil {
		return nil, err
	}

	var response struct {
		Menus []MenuSummary `json:"menus"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	return response.Menus, nil
}

// GetMenu fetches the full menu with sections, items and containers. The
// response is cached per the configured duration so repeated syncs inside
// the window never hit the network.
func (c *Client) GetMenu(ctx context.Context, menuID string) (*Menu, error) {
	body, err := c.cachedRequest(ctx, cachePrefix+"menu:"+menuID, "/menus/"+menuID+"?full=true", c.menuTTL)
	if err != nil {
		return nil, err
	}

	var response struct {
		Menu *Menu `json:"menu"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	if response.Menu == nil {
		return nil, &APIError{Message: "response contained no menu"}
	}

	return response.Menu, nil
}

// TestConnection performs a lightweight authenticated call, used by the
// admin connectivity check.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GetLocations(ctx)

	return err
}

// ClearCache drops every cached Untappd response.
func (c *Client) ClearCache(ctx context.Context) {
	if c.cache != nil {
		c.cache.DeletePrefix(ctx, cachePrefix)
	}
}

// Download fetches an arbitrary URL (label art lives on a CDN, no auth)
// under the client's timeout discipline.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: "image download failed"}
	}

	return io.ReadAll(resp.Body)
}

// Authenticate exchanges credentials for an API token via POST /sessions.
// It is used for initial setup only, never by the sync path.
func Authenticate(ctx context.Context, baseURL string, email string, password string, readOnly bool) (*Credentials, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: upstreamError(body)}
	}

	var response struct {
		User struct {
			Email             string `json:"email"`
			AuthToken         string `json:"auth_token"`
			AuthTokenReadOnly string `json:"auth_token_read_only"`
		} `json:"user"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	token := response.User.AuthToken
	if readOnly {
		token = response.User.AuthTokenReadOnly
	}

	return &Credentials{Email: response.User.Email, Token: token}, nil
}

func upstreamError(body []byte) string {
	var response struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(body, &response); err == nil && response.Error != "" {
		return response.Error
	}

	return "API request failed"
}
