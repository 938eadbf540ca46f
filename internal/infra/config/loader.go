package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
)

const (
	EnvAPIKey              = "FIELDEDGE_API_KEY"
	EnvAPIURL              = "FIELDEDGE_API_URL"
	EnvEnvironment         = "FIELDEDGE_ENVIRONMENT"
	EnvCompanyID           = "FIELDEDGE_COMPANY_ID"
	EnvTimeout             = "FIELDEDGE_TIMEOUT"
	EnvSubscriptionKey     = "FIELDEDGE_SUBSCRIPTION_KEY"
	EnvUIDir               = "FIELDEDGE_UI_DIR"
	EnvMetricsEnabled      = "FIELDEDGE_METRICS_ENABLED"
	EnvHealthzEnabled      = "FIELDEDGE_HEALTHZ_ENABLED"
	EnvObservabilityAddr   = "FIELDEDGE_OBSERVABILITY_ADDR"
	defaultTimeoutMillisec = int(domain.DefaultTimeout / time.Millisecond)
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = [][2]string{
	{"apiKey", EnvAPIKey},
	{"apiUrl", EnvAPIURL},
	{"environment", EnvEnvironment},
	{"companyId", EnvCompanyID},
	{"timeoutMs", EnvTimeout},
	{"subscriptionKey", EnvSubscriptionKey},
	{"uiDir", EnvUIDir},
	{"observability.metrics", EnvMetricsEnabled},
	{"observability.healthz", EnvHealthzEnabled},
	{"observability.listenAddress", EnvObservabilityAddr},
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	HealthzEnabled bool
	ListenAddress  string
}

// Enabled reports whether the observability server has anything to serve.
func (c ObservabilityConfig) Enabled() bool {
	return c.MetricsEnabled || c.HealthzEnabled
}

// Config is the resolved server configuration.
type Config struct {
	Client        domain.ClientConfig
	UIDir         string
	Observability ObservabilityConfig
}

type Loader struct {
	logger    *zap.Logger
	lookupEnv func(string) (string, bool)
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config"), lookupEnv: os.LookupEnv}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("environment", domain.EnvironmentProduction)
	v.SetDefault("timeoutMs", defaultTimeoutMillisec)
	v.SetDefault("uiDir", domain.DefaultUIDir)
	v.SetDefault("observability.metrics", false)
	v.SetDefault("observability.healthz", false)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	return v
}

// Load reads the optional YAML file at path and overlays the FIELDEDGE_* environment.
func (l *Loader) Load(ctx context.Context, path string) (Config, error) {
	v := newViper()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		expanded, missing, err := expandConfigEnv(data, l.lookupEnv)
		if err != nil {
			return Config{}, err
		}
		if len(missing) > 0 {
			l.logger.Warn("missing environment variables in config", zap.String("path", path), zap.Strings("missing", missing))
		}
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	for _, binding := range envBindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", binding[1], err)
		}
	}

	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	cfg, errs := normalize(v)
	if len(errs) > 0 {
		return Config{}, errors.New(strings.Join(errs, "; "))
	}
	if strings.TrimSpace(cfg.Client.APIKey) == "" {
		return Config{}, domain.ErrMissingAPIKey
	}
	return cfg, nil
}

func normalize(v *viper.Viper) (Config, []string) {
	var errs []string

	environment := strings.ToLower(strings.TrimSpace(v.GetString("environment")))
	switch environment {
	case "":
		environment = domain.EnvironmentProduction
	case domain.EnvironmentProduction, domain.EnvironmentSandbox:
	default:
		errs = append(errs, fmt.Sprintf("environment must be %q or %q, got %q", domain.EnvironmentProduction, domain.EnvironmentSandbox, environment))
	}

	timeoutMs, err := cast.ToIntE(v.Get("timeoutMs"))
	switch {
	case err != nil:
		errs = append(errs, "timeoutMs must be an integer number of milliseconds")
	case timeoutMs < 0:
		errs = append(errs, "timeoutMs must be >= 0")
	}
	metricsEnabled, err := cast.ToBoolE(v.Get("observability.metrics"))
	if err != nil {
		errs = append(errs, "observability.metrics must be a boolean")
	}
	healthzEnabled, err := cast.ToBoolE(v.Get("observability.healthz"))
	if err != nil {
		errs = append(errs, "observability.healthz must be a boolean")
	}

	uiDir := strings.TrimSpace(v.GetString("uiDir"))
	if uiDir == "" {
		uiDir = domain.DefaultUIDir
	}
	addr := strings.TrimSpace(v.GetString("observability.listenAddress"))
	if addr == "" {
		addr = domain.DefaultObservabilityListenAddress
	}

	return Config{
		Client: domain.ClientConfig{
			APIKey:          strings.TrimSpace(v.GetString("apiKey")),
			BaseURL:         strings.TrimSpace(v.GetString("apiUrl")),
			Environment:     environment,
			CompanyID:       strings.TrimSpace(v.GetString("companyId")),
			SubscriptionKey: strings.TrimSpace(v.GetString("subscriptionKey")),
			Timeout:         time.Duration(timeoutMs) * time.Millisecond,
		},
		UIDir: uiDir,
		Observability: ObservabilityConfig{
			MetricsEnabled: metricsEnabled,
			HealthzEnabled: healthzEnabled,
			ListenAddress:  addr,
		},
	}, errs
}
