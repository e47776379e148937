// Package appstore is a minimal App Store Server API client covering the
// order id lookup endpoint.
package appstore

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/model"
)

const (
	ProductionURL = "https://api.storekit.itunes.apple.com"
	SandboxURL    = "https://api.storekit-sandbox.itunes.apple.com"

	Audience = "appstoreconnect-v1"

	// Apple rejects tokens that live longer than an hour; the official
	// libraries sign for five minutes.
	tokenLifetime = 5 * time.Minute

	maxErrorBody = 4096
)

// OrderLookupStatus values returned in OrderLookupResponse.Status.
const (
	OrderLookupValid   = 0
	OrderLookupInvalid = 1
)

type OrderLookupResponse struct {
	Status             int      `json:"status"`
	SignedTransactions []string `json:"signedTransactions"`
}

type Client struct {
	key        *ecdsa.PrivateKey
	keyID      string
	issuerID   string
	bundleID   string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient parses the PKCS#8 ".p8" signing key downloaded from App Store
// Connect and returns a client bound to env.
func NewClient(privateKey []byte, keyID, issuerID, bundleID string, env model.Environment, opts ...Option) (*Client, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	c := &Client{
		key:        key,
		keyID:      keyID,
		issuerID:   issuerID,
		bundleID:   bundleID,
		baseURL:    ProductionURL,
		userAgent:  "eolookup",
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	if env == model.Sandbox {
		c.baseURL = SandboxURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) bearerToken() (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"iss": c.issuerID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
		"aud": Audience,
		"bid": c.bundleID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = c.keyID

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign bearer token: %w", err)
	}
	return signed, nil
}

// LookUpOrderID returns the signed transactions attached to a customer's
// order id (the id printed on the App Store purchase receipt email).
func (c *Client) LookUpOrderID(ctx context.Context, orderID string) (*OrderLookupResponse, error) {
	var out OrderLookupResponse
	if err := c.get(ctx, "/inApps/v1/lookup/"+url.PathEscape(orderID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	token, err := c.bearerToken()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Sugar().Debugw("App Store API request", "method", req.Method, "url", req.URL.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logger.Sugar().Debugw("App Store API response", "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{HTTPStatus: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.ErrorCode = 0
		apiErr.ErrorMessage = strings.TrimSpace(string(body))
	}
	return apiErr
}
