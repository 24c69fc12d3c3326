package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

var ErrMissingCredentials = errors.New("razorpay: key id and key secret are required")

type Config struct {
	KeyID     string
	KeySecret string
	// BaseURL overrides the live API endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Razorpay REST API using HTTP Basic auth.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

func (c *Client) ListPayments(ctx context.Context, opts ListOptions) ([]Payment, error) {
	var out struct {
		Count int       `json:"count"`
		Items []Payment `json:"items"`
	}
	if err := c.list(ctx, "/payments", opts, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListSettlements(ctx context.Context, opts ListOptions) ([]Settlement, error) {
	var out struct {
		Count int          `json:"count"`
		Items []Settlement `json:"items"`
	}
	if err := c.list(ctx, "/settlements", opts, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListRefunds(ctx context.Context, opts ListOptions) ([]Refund, error) {
	var out struct {
		Count int      `json:"count"`
		Items []Refund `json:"items"`
	}
	if err := c.list(ctx, "/refunds", opts, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) list(ctx context.Context, path string, opts ListOptions, out any) error {
	q := url.Values{}
	q.Set("count", strconv.Itoa(opts.Count))
	q.Set("skip", strconv.Itoa(opts.Skip))
	if opts.From != nil {
		q.Set("from", strconv.FormatInt(*opts.From, 10))
	}
	if opts.To != nil {
		q.Set("to", strconv.FormatInt(*opts.To, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("razorpay %s: %w", path, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay %s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("razorpay %s failed: http=%d body=%s", path, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("razorpay %s decode: %w", path, err)
	}
	return nil
}
