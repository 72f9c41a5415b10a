// Package client is a Go consumer of the charge finder API. It mirrors
// the web frontend's store: a thin wrapper translating actions into HTTP
// calls and mirroring results into local state, with the bearer token
// persisted across instances in a file.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Location is a charger's coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Charger is the API's charger representation.
type Charger struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      Location `json:"location"`
	Status        string   `json:"status"`
	PowerOutput   float64  `json:"powerOutput"`
	ConnectorType string   `json:"connectorType"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// ChargerFields carries the fields for creating or partially updating a
// charger. Nil fields are omitted from the request body.
type ChargerFields struct {
	Name          *string   `json:"name,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Status        *string   `json:"status,omitempty"`
	PowerOutput   *float64  `json:"powerOutput,omitempty"`
	ConnectorType *string   `json:"connectorType,omitempty"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Store holds client-side state: the bearer token and the last fetched
// charger list. All state access is mutex-guarded. When tokenPath is
// non-empty the token survives restarts in that file.
type Store struct {
	baseURL   string
	httpc     *http.Client
	tokenPath string

	mu       sync.Mutex
	token    string
	chargers []Charger
}

// New creates a Store for the API at baseURL. If tokenPath is non-empty,
// a previously persisted token is loaded from it.
func New(baseURL, tokenPath string) *Store {
	s := &Store{
		baseURL:   baseURL,
		httpc:     &http.Client{Timeout: 30 * time.Second},
		tokenPath: tokenPath,
	}
	if tokenPath != "" {
		if data, err := os.ReadFile(tokenPath); err == nil {
			s.token = string(bytes.TrimSpace(data))
		}
	}
	return s
}

// IsAuthenticated reports whether a token is held. It does not check the
// token's remaining validity; an expired token surfaces as a 401 on use.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Chargers returns a copy of the last fetched charger list.
func (s *Store) Chargers() []Charger {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Charger, len(s.chargers))
	copy(out, s.chargers)
	return out
}

// Register creates an account and stores the returned token.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "/auth/register", email, password)
}

// Login signs in and stores the returned token.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "/auth/login", email, password)
}

func (s *Store) authenticate(ctx context.Context, path, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := s.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	s.setToken(resp.Token)
	return nil
}

// Logout drops the token, here and from the token file.
func (s *Store) Logout() error {
	s.setToken("")
	if s.tokenPath != "" {
		if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove token file: %w", err)
		}
	}
	return nil
}

// FetchChargers retrieves all chargers and mirrors them into the store.
func (s *Store) FetchChargers(ctx context.Context) ([]Charger, error) {
	var chargers []Charger
	if err := s.do(ctx, http.MethodGet, "/chargers", nil, &chargers); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.chargers = chargers
	s.mu.Unlock()
	return chargers, nil
}

// CreateCharger creates a charger and returns the server's version of it.
func (s *Store) CreateCharger(ctx context.Context, fields ChargerFields) (*Charger, error) {
	var charger Charger
	if err := s.do(ctx, http.MethodPost, "/chargers", fields, &charger); err != nil {
		return nil, err
	}
	return &charger, nil
}

// UpdateCharger applies a partial update to the charger with the given id.
func (s *Store) UpdateCharger(ctx context.Context, id string, fields ChargerFields) (*Charger, error) {
	var charger Charger
	if err := s.do(ctx, http.MethodPut, "/chargers/"+id, fields, &charger); err != nil {
		return nil, err
	}
	return &charger, nil
}

// DeleteCharger removes the charger with the given id.
func (s *Store) DeleteCharger(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/chargers/"+id, nil, nil)
}

func (s *Store) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if s.tokenPath != "" && token != "" {
		// Best effort: the in-memory token is authoritative.
		_ = os.WriteFile(s.tokenPath, []byte(token), 0o600)
	}
}

func (s *Store) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.mu.Lock()
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	s.mu.Unlock()

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body,
// which is either {"message": "..."} or {"errors": [{field, message}]}.
func errorMessage(body io.Reader) string {
	var parsed struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return "request failed"
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if len(parsed.Errors) > 0 {
		return fmt.Sprintf("%s %s", parsed.Errors[0].Field, parsed.Errors[0].Message)
	}
	return "request failed"
}
