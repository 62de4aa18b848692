package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/skylinetravels/flightbooking/config"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func TestUpdateHealth(t *testing.T) {
	srv := health.NewServer()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	pinger := &fakePinger{}

	updateHealth(ctx, srv, pinger, logger)
	resp, err := srv.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	pinger.err = errors.New("connection refused")
	updateHealth(ctx, srv, pinger, logger)
	resp, err = srv.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}}

	_, err := OpenStore(context.Background(), cfg)

	assert.EqualError(t, err, `unknown database driver "sqlite"`)
}

func TestNewServers(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0"}}

	s := newServers(cfg, nil)

	assert.Equal(t, ":0", s.httpServer.Addr)
	assert.Contains(t, s.grpcServer.GetServiceInfo(), healthpb.Health_ServiceDesc.ServiceName)
}
