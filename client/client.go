// Package client is a Go client for the BROKER-FREE API. It carries the
// session token on every request, keeps a favorites cache that is populated
// on login and refreshed after every add/remove, and can re-filter a fetched
// page locally for responsiveness.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	token     string
	favorites map[string]bool
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		favorites:  map[string]bool{},
	}
}

// APIError is a non-2xx response decoded from the server's message field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account, stores the session token and primes the
// favorites cache.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	return &resp, nil
}

// Login authenticates, stores the session token and primes the favorites
// cache from the returned profile.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	return &resp, nil
}

// Logout clears the session token and the favorites cache.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.favorites = map[string]bool{}
	c.mu.Unlock()
}

func (c *Client) setSession(token string, user models.User) {
	favorites := map[string]bool{}
	for _, id := range user.Favorites {
		favorites[id.Hex()] = true
	}
	c.mu.Lock()
	c.token = token
	c.favorites = favorites
	c.mu.Unlock()
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListParams are the server-side listing filters.
type ListParams struct {
	Search       string
	PropertyType string
	Status       string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
	City         string
	State        string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

func (p ListParams) encode() string {
	values := url.Values{}
	set := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}
	set("search", p.Search)
	set("propertyType", p.PropertyType)
	set("status", p.Status)
	set("city", p.City)
	set("state", p.State)
	set("sortBy", p.SortBy)
	set("sortOrder", p.SortOrder)
	if p.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.Bedrooms != nil {
		values.Set("bedrooms", strconv.Itoa(*p.Bedrooms))
	}
	if p.Bathrooms != nil {
		values.Set("bathrooms", strconv.Itoa(*p.Bathrooms))
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) ListProperties(ctx context.Context, params ListParams) (*models.PropertyPage, error) {
	var page models.PropertyPage
	if err := c.do(ctx, http.MethodGet, "/api/properties"+params.encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+id, nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) CreateProperty(ctx context.Context, property models.Property) (*models.Property, error) {
	var resp struct {
		Property models.Property `json:"property"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/properties", property, &resp); err != nil {
		return nil, err
	}
	return &resp.Property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, id string, upd models.PropertyUpdate) (*models.Property, error) {
	var resp struct {
		Property models.Property `json:"property"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/properties/"+id, upd, &resp); err != nil {
		return nil, err
	}
	return &resp.Property, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+id, nil, nil)
}

func (c *Client) MyProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/user/my-properties", nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *Client) SearchNearby(ctx context.Context, longitude, latitude, maxDistance float64) ([]models.Property, error) {
	values := url.Values{}
	values.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	values.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	values.Set("maxDistance", strconv.FormatFloat(maxDistance, 'f', -1, 64))

	var properties []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/search/nearby?"+values.Encode(), nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// AddFavorite records the favorite server-side, then refreshes the cache.
func (c *Client) AddFavorite(ctx context.Context, propertyID string) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/favorites/"+propertyID, nil, nil); err != nil {
		return err
	}
	return c.RefreshFavorites(ctx)
}

func (c *Client) RemoveFavorite(ctx context.Context, propertyID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/favorites/"+propertyID, nil, nil); err != nil {
		return err
	}
	return c.RefreshFavorites(ctx)
}

// RefreshFavorites reloads the favorites cache from the server.
func (c *Client) RefreshFavorites(ctx context.Context) error {
	var favorites []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/auth/favorites", nil, &favorites); err != nil {
		return err
	}
	cache := map[string]bool{}
	for _, p := range favorites {
		cache[p.ID.Hex()] = true
	}
	c.mu.Lock()
	c.favorites = cache
	c.mu.Unlock()
	return nil
}

func (c *Client) IsFavorite(propertyID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.favorites[propertyID]
}

func (c *Client) FavoriteCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.favorites)
}
