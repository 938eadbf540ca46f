package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/config"
	"fieldedge/internal/infra/mockapi"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvAPIKey, config.EnvAPIURL, config.EnvEnvironment, config.EnvCompanyID,
		config.EnvTimeout, config.EnvSubscriptionKey, config.EnvUIDir,
		config.EnvMetricsEnabled, config.EnvHealthzEnabled, config.EnvObservabilityAddr,
	} {
		t.Setenv(key, "")
	}
}

func TestInitializeApplication_MissingAPIKey(t *testing.T) {
	isolateEnv(t)

	_, err := InitializeApplication(context.Background(), ServeConfig{}, LoggingConfig{Logger: zap.NewNop()})
	require.True(t, errors.Is(err, domain.ErrMissingAPIKey))
}

func TestInitializeApplication_DispatchesAgainstUpstream(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Options{Token: "app-key"}))
	defer srv.Close()
	t.Setenv(config.EnvAPIKey, "app-key")
	t.Setenv(config.EnvAPIURL, srv.URL)

	application, err := InitializeApplication(context.Background(), ServeConfig{}, LoggingConfig{})
	require.NoError(t, err)
	require.Equal(t, 97, application.Tools().Len())
	require.Equal(t, srv.URL, application.Config().Client.BaseURL)

	created := application.Dispatch(context.Background(), "fieldedge_create_location", json.RawMessage(`{"customerId":"c-1","name":"HQ","type":"service","address":{"city":"Austin"}}`))
	require.False(t, created.IsError, created.Text())

	var location map[string]any
	require.NoError(t, json.Unmarshal([]byte(created.Text()), &location))
	id, _ := location["id"].(string)
	require.NotEmpty(t, id)

	args, err := json.Marshal(map[string]any{"id": id})
	require.NoError(t, err)
	got := application.Dispatch(context.Background(), "fieldedge_get_location", args)
	require.False(t, got.IsError, got.Text())
	require.Contains(t, got.Text(), `"name": "HQ"`)
}

func TestApplication_CallGoesThroughProtocolServer(t *testing.T) {
	isolateEnv(t)
	srv := httptest.NewServer(mockapi.NewServer(mockapi.Options{Token: "app-key"}))
	defer srv.Close()
	t.Setenv(config.EnvAPIKey, "app-key")
	t.Setenv(config.EnvAPIURL, srv.URL)

	ctx := context.Background()
	application, err := InitializeApplication(ctx, ServeConfig{}, LoggingConfig{})
	require.NoError(t, err)

	result, err := application.Call(ctx, "fieldedge_list_payments", json.RawMessage(`{"page":1}`))
	require.NoError(t, err)
	require.False(t, result.IsError, result.Text())
	require.Contains(t, result.Text(), `"totalCount": 0`)

	_, err = application.Call(ctx, "fieldedge_missing", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown tool: fieldedge_missing")

	served, err := application.ServedTools(ctx)
	require.NoError(t, err)
	require.Len(t, served, application.Tools().Len())
}

func TestNewConfig_AppliesOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvAPIKey, "k")
	enabled := true

	cfg, err := NewConfig(context.Background(), ServeConfig{
		UIDir: "/opt/ui",
		Observability: &ObservabilityOptions{
			MetricsEnabled: &enabled,
			ListenAddress:  "127.0.0.1:9191",
		},
	}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "/opt/ui", cfg.UIDir)
	require.True(t, cfg.Observability.MetricsEnabled)
	require.False(t, cfg.Observability.HealthzEnabled)
	require.Equal(t, "127.0.0.1:9191", cfg.Observability.ListenAddress)
}

func TestApplication_RunRejectsUnknownTransport(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvAPIKey, "k")

	application, err := InitializeApplication(context.Background(), ServeConfig{Transport: "carrier-pigeon"}, LoggingConfig{})
	require.NoError(t, err)
	err = application.Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported transport "carrier-pigeon"`)
}
