// Package registry talks to the external national identity registry. The
// upstream is rate-limited and fallible: answers are classified into
// "person found", "no record" and "unavailable", and found/negative answers
// can be cached so repeated checks for the same cedula stay local.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Cache stores registry answers keyed by canonical cedula. Implemented by
// the Redis registry cache; nil disables caching.
type Cache interface {
	Get(ctx context.Context, cedula string) (*ports.RegistryPerson, bool, error)
	Put(ctx context.Context, cedula string, person *ports.RegistryPerson) error
}

// Config captures the settings for the registry client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	logger  zerolog.Logger
}

// NewClient builds a registry client with a bounded request timeout. cache
// may be nil.
func NewClient(cfg Config, cache Cache, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		logger:  logger,
	}
}

// registryResponse mirrors the upstream JSON envelope.
type registryResponse struct {
	Error bool `json:"error"`
	Data  struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"data"`
}

// Lookup resolves a cedula against the registry. Any answered-but-unusable
// response (non-2xx, error:true, malformed or empty body) maps to
// domain.ErrPersonNotFound; transport failures and timeouts map to
// domain.ErrRegistryUnavailable. Cache errors are logged and ignored, the
// upstream call still happens.
func (c *Client) Lookup(ctx context.Context, cedula domain.Cedula) (*ports.RegistryPerson, error) {
	if c.cache != nil {
		person, hit, err := c.cache.Get(ctx, cedula.String())
		if err != nil {
			c.logger.Warn().Err(err).Msg("registry cache read failed")
		} else if hit {
			if person == nil {
				return nil, domain.ErrPersonNotFound
			}
			return person, nil
		}
	}

	person, err := c.fetch(ctx, cedula)
	if err != nil && !errors.Is(err, domain.ErrPersonNotFound) {
		return nil, err
	}

	// Cache both positives and definitive negatives, never outages.
	if c.cache != nil {
		if cacheErr := c.cache.Put(ctx, cedula.String(), person); cacheErr != nil {
			c.logger.Warn().Err(cacheErr).Msg("registry cache write failed")
		}
	}

	if person == nil {
		return nil, domain.ErrPersonNotFound
	}
	return person, nil
}

func (c *Client) fetch(ctx context.Context, cedula domain.Cedula) (*ports.RegistryPerson, error) {
	q := url.Values{}
	q.Set("nacionalidad", cedula.Nationality)
	q.Set("cedula", cedula.Number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/consulta?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.ErrPersonNotFound
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.ErrPersonNotFound
	}
	if body.Error || body.Data.FirstName == "" {
		return nil, domain.ErrPersonNotFound
	}

	return &ports.RegistryPerson{
		Name:    strings.TrimSpace(body.Data.FirstName),
		Surname: strings.TrimSpace(body.Data.LastName),
	}, nil
}
