package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"tbs/src/types"
	"time"

	"github.com/tidwall/gjson"
)

// AmadeusClient talks to the flight GDS. A client with an empty
// ClientID is treated as not configured and callers fall back to their
// degraded paths instead of erroring.
type AmadeusClient struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

var amadeusClient *AmadeusClient

func GetAmadeusClient() *AmadeusClient {
	if amadeusClient != nil {
		return amadeusClient
	}
	baseURL := os.Getenv("AMADEUS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}
	c := &AmadeusClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		HTTPClient:   http.DefaultClient,
	}
	amadeusClient = c
	return c
}

// NewAmadeusClient Replace GDS client with custom implementation
func NewAmadeusClient(c *AmadeusClient) *AmadeusClient {
	amadeusClient = c
	return amadeusClient
}

func (c *AmadeusClient) IsConfigured() bool {
	return c != nil && c.ClientID != ""
}

// GDSResponse carries the raw outcome of one GDS call so callers can
// both parse it and audit it.
type GDSResponse struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (c *AmadeusClient) AccessToken(ctx context.Context) (string, error) {
	if cached := GetCachedGDSToken(); cached != "" {
		return cached, nil
	}
	// Holding the lock across the fetch single-flights concurrent
	// token requests.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	tokenURL := c.BaseURL + "/v1/security/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", res.StatusCode)
	}
	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	ttl := time.Duration(gjson.GetBytes(body, "expires_in").Int()) * time.Second
	if ttl <= 0 {
		ttl = 25 * time.Minute
	}
	c.token = token
	c.tokenExp = time.Now().Add(ttl - time.Minute)
	CacheGDSToken(token, ttl)
	return token, nil
}

func (c *AmadeusClient) post(ctx context.Context, path string, payload any) (*GDSResponse, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	callURL := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	out := &GDSResponse{
		Method:     http.MethodPost,
		URL:        callURL,
		StatusCode: res.StatusCode,
		Body:       body,
	}
	if res.StatusCode >= http.StatusBadRequest {
		msg := gjson.GetBytes(body, "errors.0.detail").String()
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", res.StatusCode)
		}
		log.Printf("[Amadeus] %s %s: %s\n", http.MethodPost, path, msg)
		return out, fmt.Errorf("%s", msg)
	}
	return out, nil
}

// PriceFlightOffer asks the GDS for an authoritative re-quote of a
// previously shown offer.
func (c *AmadeusClient) PriceFlightOffer(ctx context.Context, offer types.JSONB) (*GDSResponse, error) {
	payload := types.JSONB{
		"data": types.JSONB{
			"type":         "flight-offers-pricing",
			"flightOffers": []any{offer},
		},
	}
	return c.post(ctx, "/v1/shopping/flight-offers/pricing", payload)
}

// CreateFlightOrder submits a built order payload for ticketing.
func (c *AmadeusClient) CreateFlightOrder(ctx context.Context, payload types.JSONB) (*GDSResponse, error) {
	return c.post(ctx, "/v1/booking/flight-orders", payload)
}
