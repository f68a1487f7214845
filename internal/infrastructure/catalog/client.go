package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/tiendafon/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches the product catalog from the storefront API. The
// store backend owns persistence; this client only reads the in-stock
// snapshot the matcher operates on.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// listResponse is the wire shape of the catalog listing endpoint.
type listResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// NewClient creates a new catalog API client
func NewClient(apiKey, baseURL string) *Client {
	// The store API allows 600 requests per minute per key; stay under
	// it with some burst headroom.
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// ListInStock returns the products currently available for sale, in
// the stable order the store API serves them. Retries transient
// failures up to 3 times.
func (c *Client) ListInStock(ctx context.Context) ([]domain.Product, error) {
	endpoint := fmt.Sprintf("%s/api/products", c.baseURL)
	params := url.Values{}
	params.Add("inStock", "true")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var listResp listResponse
		if err := json.Unmarshal(body, &listResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] %d in-stock products", len(listResp.Products))
		}
		return listResp.Products, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with auth headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "TiendaFon/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}
