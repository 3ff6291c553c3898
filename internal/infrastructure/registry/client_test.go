package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

type memCache struct {
	entries map[string]*ports.RegistryPerson
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*ports.RegistryPerson)}
}

func (c *memCache) Get(_ context.Context, cedula string) (*ports.RegistryPerson, bool, error) {
	p, ok := c.entries[cedula]
	return p, ok, nil
}

func (c *memCache) Put(_ context.Context, cedula string, person *ports.RegistryPerson) error {
	c.puts++
	c.entries[cedula] = person
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, cache Cache) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, cache, zerolog.Nop()), srv
}

func TestLookup_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cedula"); got != "12345678" {
			t.Fatalf("expected numeric cedula param, got %q", got)
		}
		if got := r.URL.Query().Get("nacionalidad"); got != "V" {
			t.Fatalf("expected nationality param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false,"data":{"first_name":" Luis ","last_name":"Perez"}}`))
	}, nil)

	person, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "12345678"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if person.Name != "Luis" || person.Surname != "Perez" {
		t.Fatalf("unexpected person: %+v", person)
	}
}

func TestLookup_ErrorFlagMeansNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true}`))
	}, nil)

	_, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestLookup_Non2xxMeansNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestLookup_MalformedBodyMeansNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}, nil)

	_, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestLookup_TransportFailureMeansUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := NewClient(Config{BaseURL: srv.URL}, nil, zerolog.Nop())

	_, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if !errors.Is(err, domain.ErrRegistryUnavailable) {
		t.Fatalf("expected ErrRegistryUnavailable, got %v", err)
	}
}

func TestLookup_CacheHitSkipsUpstream(t *testing.T) {
	cache := newMemCache()
	cache.entries["V1"] = &ports.RegistryPerson{Name: "Cached", Surname: "Person"}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("upstream should not be hit on cache hit")
	}, cache)

	person, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if person.Name != "Cached" {
		t.Fatalf("unexpected person: %+v", person)
	}
}

func TestLookup_NegativeAnswerIsCached(t *testing.T) {
	cache := newMemCache()
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"error":true}`))
	}, cache)

	ced := domain.Cedula{Nationality: "V", Number: "404"}
	for i := 0; i < 2; i++ {
		if _, err := client.Lookup(context.Background(), ced); !errors.Is(err, domain.ErrPersonNotFound) {
			t.Fatalf("expected ErrPersonNotFound, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
	if cache.puts != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.puts)
	}
}

func TestLookup_OutageNotCached(t *testing.T) {
	cache := newMemCache()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(Config{BaseURL: srv.URL}, cache, zerolog.Nop())

	_, err := client.Lookup(context.Background(), domain.Cedula{Nationality: "V", Number: "1"})
	if !errors.Is(err, domain.ErrRegistryUnavailable) {
		t.Fatalf("expected ErrRegistryUnavailable, got %v", err)
	}
	if cache.puts != 0 {
		t.Fatalf("outages must not be cached, got %d writes", cache.puts)
	}
}
