package grpc

import (
	"context"
	"errors"
	"testing"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/actions"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/services"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fixedLanguage string

func (v fixedLanguage) Detect(string) string { return string(v) }

type readOnlyStore struct {
	store.DocumentStore
}

func (readOnlyStore) Create(context.Context, store.Document) (store.Document, error) {
	return nil, errors.New("permission denied")
}

func newApp(s store.DocumentStore) *App {
	svc := services.New(s, services.Options{Detector: fixedLanguage("en")})
	return NewGrpc(actions.New(svc))
}

func status(t *testing.T, app *App, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := app.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestCheckHealth_Serving(t *testing.T) {
	app := newApp(store.NewMemoryStore())
	assert.True(t, app.CheckHealth(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, app, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, app, StoreService))
}

func TestCheckHealth_NotServing(t *testing.T) {
	app := newApp(readOnlyStore{DocumentStore: store.NewMemoryStore()})
	assert.False(t, app.CheckHealth(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, app, StoreService))
}
