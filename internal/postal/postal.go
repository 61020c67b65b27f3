// Package postal resolves Brazilian postal codes (CEP) to street addresses
// through the ViaCEP web service.
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amaralimoveis/vitrine/internal/listing"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

// Address is the part of a ViaCEP answer the catalog uses.
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Region       string `json:"region"`
}

// Lookuper resolves a postal code. Any failure is reported as not found.
type Lookuper interface {
	Lookup(ctx context.Context, cep string) (*Address, bool)
}

// Client queries ViaCEP, retrying rate-limited and unavailable responses
// with exponential backoff.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	MaxRetries int
	// Backoff is the wait before the first retry; it doubles per attempt.
	Backoff time.Duration
}

// NewClient returns a Client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTP:       &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// Lookup resolves cep, which may be masked. Inputs without exactly eight
// digits are never sent.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, bool) {
	digits := listing.OnlyDigits(cep)
	if len(digits) != 8 {
		return nil, false
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, digits))
	if err != nil {
		slog.Warn("postal lookup failed", "cep", digits, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("postal lookup failed", "cep", digits, "status", resp.StatusCode)
		return nil, false
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Warn("postal lookup returned invalid JSON", "cep", digits, "error", err)
		return nil, false
	}
	if isError(body.Erro) {
		return nil, false
	}

	return &Address{
		PostalCode:   listing.FormatCEP(digits),
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		Region:       strings.ToUpper(body.UF),
	}, true
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	attempts := max(c.MaxRetries, 1)

	var resp *http.Response
	for attempt := range attempts {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err = httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}
		if attempt == attempts-1 {
			break
		}

		resp.Body.Close()
		backoff := c.Backoff << uint(attempt)
		slog.Warn("postal service busy, retrying",
			"status", resp.StatusCode, "backoff", backoff, "attempt", attempt+1, "max", attempts)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return resp, nil
}

// isError reports whether ViaCEP flagged the answer as an unknown CEP. The
// service has sent both true and "true".
func isError(v any) bool {
	switch e := v.(type) {
	case bool:
		return e
	case string:
		return e == "true"
	}
	return false
}
