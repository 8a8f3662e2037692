package mux

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(NewMux("v1.2.3", Dependencies{}))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
	assert.Equal(t, "", expects.DB)
}

func TestHealthHandler_DB(t *testing.T) {
	var pingErr error
	ts := httptest.NewServer(NewMux("v1.2.3", Dependencies{
		DB: pingFunc(func(context.Context) error { return pingErr }),
	}))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.DB)

	pingErr = errors.New("connection refused")
	expects = healthResponse{}
	assertGet(t, ts, "/health", &expects, 503)
	assert.Equal(t, "ERROR", expects.Status)
	assert.Equal(t, "connection refused", expects.DB)
}
