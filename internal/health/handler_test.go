package health_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"personreg/internal/health"
	"personreg/internal/person/service"
	"personreg/internal/person/store"
	"personreg/pkg/platform/sentinel"
	"personreg/pkg/testutil"
)

func newHealthRouter(st store.Store) http.Handler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(st, logger, nil)

	r := chi.NewRouter()
	health.New(svc).Register(r)
	return r
}

func TestHealthHealthy(t *testing.T) {
	router := newHealthRouter(store.NewInMemory())

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[health.Response](t, rr)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "operational", resp.API)
	assert.Equal(t, "connected", resp.Database)
}

func TestHealthUnreachableStore(t *testing.T) {
	router := newHealthRouter(downStore{InMemory: store.NewInMemory()})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	resp := testutil.UnmarshalResponse[health.Response](t, rr)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unreachable", resp.Database)
}

// downStore embeds the working in-memory store but fails pings.
type downStore struct {
	*store.InMemory
}

func (downStore) Ping(context.Context) error { return sentinel.ErrUnavailable }
