// Package backoffice is a thin HTTP client for the back-office CRUD API:
// catalog reads and reservation submission.
package backoffice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"eclat/internal/model"
)

// Client calls the back-office API. GET responses can be cached in Redis.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client for baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching for GET endpoints.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// ListServices fetches the active services.
func (c *Client) ListServices(ctx context.Context) ([]model.Service, error) {
	var wrap struct {
		Services []model.Service `json:"services"`
	}
	if c.readCache(ctx, "catalog:services", &wrap) {
		return wrap.Services, nil
	}
	if err := c.doGet(ctx, c.baseURL+"/api/v1/services?active=true", &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, "catalog:services", wrap)
	return wrap.Services, nil
}

// ListFormations fetches the active formations.
func (c *Client) ListFormations(ctx context.Context) ([]model.Formation, error) {
	var wrap struct {
		Formations []model.Formation `json:"formations"`
	}
	if c.readCache(ctx, "catalog:formations", &wrap) {
		return wrap.Formations, nil
	}
	if err := c.doGet(ctx, c.baseURL+"/api/v1/formations?active=true", &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, "catalog:formations", wrap)
	return wrap.Formations, nil
}

// GetService fetches a single service by id.
func (c *Client) GetService(ctx context.Context, id int64) (*model.Service, error) {
	var svc model.Service
	key := fmt.Sprintf("catalog:service:%d", id)
	if c.readCache(ctx, key, &svc) {
		return &svc, nil
	}
	if err := c.doGet(ctx, fmt.Sprintf("%s/api/v1/services/%d", c.baseURL, id), &svc); err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, svc)
	return &svc, nil
}

// GetFormation fetches a single formation by id.
func (c *Client) GetFormation(ctx context.Context, id int64) (*model.Formation, error) {
	var form model.Formation
	key := fmt.Sprintf("catalog:formation:%d", id)
	if c.readCache(ctx, key, &form) {
		return &form, nil
	}
	if err := c.doGet(ctx, fmt.Sprintf("%s/api/v1/formations/%d", c.baseURL, id), &form); err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, form)
	return &form, nil
}

// SubmitRequest is the body for POST /api/v1/reservations.
type SubmitRequest struct {
	Kind            string `json:"kind"`
	ItemID          int64  `json:"item_id"`
	ItemName        string `json:"item_name"`
	Date            string `json:"date"` // YYYY-MM-DD
	TimeSlot        string `json:"time_slot"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Message         string `json:"message,omitempty"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	IdempotencyKey  string `json:"idempotency_key"`
}

// SubmitResponse is the back-office acknowledgment.
type SubmitResponse struct {
	Success       bool   `json:"success"`
	ReservationID int64  `json:"reservation_id,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Error         string `json:"error,omitempty"`
}

// SubmitReservation posts a finalized reservation.
func (c *Client) SubmitReservation(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.doPost(ctx, c.baseURL+"/api/v1/reservations", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("back-office rejected reservation: %s", resp.Error)
	}
	return &resp, nil
}

// HealthCheck checks if the back-office API is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}
