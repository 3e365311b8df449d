package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"stockpulse/feed/pkg/faulttolerance"
)

const (
	quoteRequestTimeout = 10 * time.Second
	quoteBurstSize      = 5
)

// HTTPQuoteClient fetches quotes over HTTP. One request per tick covers the
// whole symbol set, with the symbols comma-joined into a single query
// parameter the way the upstream API expects.
type HTTPQuoteClient struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	retryer *faulttolerance.Retryer
	logger  *logrus.Logger
}

// quoteAPIResponse mirrors the upstream JSON envelope.
type quoteAPIResponse struct {
	Data []struct {
		Symbol        string `json:"symbol"`
		Price         string `json:"price"`
		LastTradeTime string `json:"last_trade_time"`
	} `json:"data"`
}

// NewHTTPQuoteClient creates a quote client with rate limiting and retries.
func NewHTTPQuoteClient(apiURL, apiKey string, requestsPerSecond float64, logger *logrus.Logger) *HTTPQuoteClient {
	return &HTTPQuoteClient{
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: quoteRequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), quoteBurstSize),
		retryer: faulttolerance.NewRetryer(faulttolerance.DefaultRetryConfig("quote-api"), logger),
		logger:  logger,
	}
}

// Fetch performs one batched quote query. It blocks on the rate limiter
// first so a short poll interval cannot exceed the API budget.
func (c *HTTPQuoteClient) Fetch(ctx context.Context, symbols []string) ([]RawQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var quotes []RawQuote
	err := c.retryer.Execute(ctx, func() error {
		var err error
		quotes, err = c.fetchOnce(ctx, symbols)
		return err
	})
	if err != nil {
		return nil, err
	}

	return quotes, nil
}

func (c *HTTPQuoteClient) fetchOnce(ctx context.Context, symbols []string) ([]RawQuote, error) {
	reqURL := fmt.Sprintf("%s?symbol=%s&api_token=%s",
		c.apiURL, url.QueryEscape(strings.Join(symbols, ",")), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var payload quoteAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	quotes := make([]RawQuote, 0, len(payload.Data))
	for _, d := range payload.Data {
		quotes = append(quotes, RawQuote{
			Symbol:      d.Symbol,
			PriceString: d.Price,
			TradeTime:   parseTradeTime(d.LastTradeTime),
		})
	}

	return quotes, nil
}

// parseTradeTime tries the formats the upstream has been seen to use.
// Falls back to now so a sloppy timestamp does not lose the quote.
func parseTradeTime(s string) time.Time {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Now()
}
