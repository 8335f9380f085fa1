package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"travelbudgeter/internal/models"
	"travelbudgeter/internal/ratelimit"
	"travelbudgeter/internal/token"
)

// Search endpoint variants. Both share the same request/response contract.
const (
	EndpointFlightOffers = "flight-offers"
	EndpointBestOptions  = "best-options"
)

const (
	refreshPath  = "/auth/jwt/refresh/"
	loginPath    = "/auth/jwt/create/"
	logoutPath   = "/auth/logout/"
	mePath       = "/auth/users/me/"
	bookPath     = "/book-flight/"
	bookingsPath = "/bookings"
)

// Client is the single authenticated gateway to the flight backend. Every call
// carries a bearer token; a 401 triggers exactly one refresh followed by
// exactly one retry of the original request. Callers never observe a raw 401:
// they get a decoded response or one of the typed errors in errors.go.
//
// Two concurrent calls that both hit a 401 may each refresh independently;
// that redundancy is tolerated, not coordinated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	limiter    *ratelimit.EndpointLimiter
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Limiter *ratelimit.EndpointLimiter
}

func New(cfg Config, tokens token.Store) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    cfg.Limiter,
	}
}

// SearchOffers runs one search against the chosen endpoint variant. The body
// is either a JSON array of offers or an object with an "error" field; the
// latter is returned as an *UpstreamError.
func (c *Client) SearchOffers(ctx context.Context, endpoint string, params models.SearchParams) ([]models.FlightOffer, error) {
	body, err := c.do(ctx, http.MethodPost, "/"+endpoint+"/", params)
	if err != nil {
		return nil, err
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(body, &offers); err == nil {
		return offers, nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
		return nil, &UpstreamError{Status: http.StatusOK, Message: failure.Error}
	}

	return nil, &UpstreamError{Status: http.StatusOK, Message: "malformed search response"}
}

// BookFlight submits an order. req.FlightOffer must be the raw offer payload
// exactly as the search endpoint issued it.
func (c *Client) BookFlight(ctx context.Context, req models.BookingRequest) (*models.Order, error) {
	body, err := c.do(ctx, http.MethodPost, bookPath, req)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, &UpstreamError{Status: http.StatusOK, Message: "malformed booking response"}
	}
	return &order, nil
}

// CurrentUser returns the session's profile, or nil without error when no
// session exists.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	if _, ok := c.tokens.Get(token.Access); !ok {
		return nil, nil
	}

	body, err := c.do(ctx, http.MethodGet, mePath, nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, &UpstreamError{Status: http.StatusOK, Message: "malformed profile response"}
	}
	return &user, nil
}

func (c *Client) ListBookings(ctx context.Context) ([]models.BookingRecord, error) {
	body, err := c.do(ctx, http.MethodGet, bookingsPath, nil)
	if err != nil {
		return nil, err
	}

	var records []models.BookingRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &UpstreamError{Status: http.StatusOK, Message: "malformed bookings response"}
	}
	return records, nil
}

// Login exchanges credentials for a token pair and stores both.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}

	body, err := c.send(ctx, http.MethodPost, loginPath, payload, "")
	if err != nil {
		return err
	}

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(body, &pair); err != nil || pair.Access == "" {
		return &UpstreamError{Status: http.StatusOK, Message: "malformed token response"}
	}

	c.tokens.Set(token.Access, pair.Access)
	c.tokens.Set(token.Refresh, pair.Refresh)
	return nil
}

// Logout tells the backend to drop the session, then clears local tokens no
// matter what the backend said.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, logoutPath, nil)
	c.tokens.Clear()

	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return nil
	}
	return err
}

// do issues one authenticated request with the refresh-and-retry protocol.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitPath(ctx, path); err != nil {
			return nil, &NetworkError{Op: method + " " + path, Err: err}
		}
	}

	access, _ := c.tokens.Get(token.Access)

	body, status, err := c.issue(ctx, method, path, payload, access)
	if err != nil {
		return nil, err
	}
	if status != http.StatusUnauthorized {
		return checkStatus(body, status)
	}

	// Reauthorizing: one refresh, then one retry with the new token. Any
	// failure past this point terminates the session.
	newAccess, err := c.refresh(ctx)
	if err != nil {
		c.tokens.Clear()
		return nil, err
	}
	c.tokens.Set(token.Access, newAccess)

	body, status, err = c.issue(ctx, method, path, payload, newAccess)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.tokens.Clear()
		return nil, &AuthorizationError{Reason: "token rejected after refresh"}
	}

	return checkStatus(body, status)
}

// send issues a single request outside the refresh protocol (login).
func (c *Client) send(ctx context.Context, method, path string, payload any, bearer string) ([]byte, error) {
	body, status, err := c.issue(ctx, method, path, payload, bearer)
	if err != nil {
		return nil, err
	}
	return checkStatus(body, status)
}

func (c *Client) issue(ctx context.Context, method, path string, payload any, bearer string) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &NetworkError{Op: method + " " + path, Err: err}
	}

	return data, resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new access token. Called at
// most once per failing request.
func (c *Client) refresh(ctx context.Context) (string, error) {
	refreshToken, ok := c.tokens.Get(token.Refresh)
	if !ok {
		return "", &AuthorizationError{Reason: "no refresh token"}
	}

	payload := map[string]string{"refresh": refreshToken}

	body, status, err := c.issue(ctx, http.MethodPost, refreshPath, payload, "")
	if err != nil {
		return "", &AuthorizationError{Reason: "refresh request failed: " + err.Error()}
	}
	if status != http.StatusOK {
		log.Printf("Token refresh rejected with status %d", status)
		return "", &AuthorizationError{Reason: "refresh rejected"}
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &refreshed); err != nil || refreshed.Access == "" {
		return "", &AuthorizationError{Reason: "malformed refresh response"}
	}

	return refreshed.Access, nil
}

func checkStatus(body []byte, status int) ([]byte, error) {
	if status >= 200 && status < 300 {
		return body, nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &failure)
	return nil, &UpstreamError{Status: status, Message: failure.Error}
}
