package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/bnema/registry-cli/internal/adapters/out/eventbus"
	"github.com/bnema/registry-cli/internal/adapters/out/ratelimit"
	"github.com/bnema/registry-cli/internal/adapters/out/registryapi"
	"github.com/bnema/registry-cli/internal/adapters/out/report"
	"github.com/bnema/registry-cli/internal/adapters/out/telemetry"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
	"github.com/bnema/registry-cli/internal/usecase/retention"
)

// RunOption customizes Run, mainly for tests.
type RunOption func(*runOptions)

type runOptions struct {
	transport http.RoundTripper
	logger    *logging.Logger
}

// WithTransport replaces the base HTTP transport.
func WithTransport(rt http.RoundTripper) RunOption {
	return func(o *runOptions) { o.transport = rt }
}

// WithLogger uses log instead of building one from the configuration.
func WithLogger(log logging.Logger) RunOption {
	return func(o *runOptions) { o.logger = &log }
}

// Run validates cfg, wires the adapters and performs one retention pass,
// rendering it to stdout. Logs go to stderr.
func Run(ctx context.Context, cfg Config, stdout io.Writer, opts ...RunOption) (*domain.RunReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := runOptions{transport: remote.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	var log logging.Logger
	if o.logger != nil {
		log = *o.logger
	} else {
		l, closeLog, err := logging.Setup(cfg.loggingConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to setup logging: %w", err)
		}
		defer func() { _ = closeLog() }()
		log = l
	}
	ctx = logging.WithCtx(ctx, log)

	client, err := newRegistryClient(cfg, o.transport, log)
	if err != nil {
		return nil, err
	}

	bus := eventbus.NewInMemory(log)

	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		return nil, log.WrapErr(err, "failed to create metrics")
	}
	if err := bus.Subscribe(metrics); err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	renderer, err := report.New(format, stdout)
	if err != nil {
		return nil, err
	}
	if err := bus.Subscribe(renderer); err != nil {
		return nil, err
	}

	svc, err := retention.NewService(client, cfg.retentionConfig(), bus)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("registry", cfg.Registry).
		Str("output", string(format)).
		Float64("rps", cfg.HTTP.RPS).
		Dur("timeout", cfg.HTTP.Timeout).
		Msg("registry client configured")

	rep, err := svc.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := renderer.Err(); err != nil {
		return rep, fmt.Errorf("failed to write report: %w", err)
	}
	return rep, nil
}

func newRegistryClient(cfg Config, base http.RoundTripper, log logging.Logger) (*registryapi.Client, error) {
	method, err := registryapi.ParseDigestMethod(cfg.DigestMethod)
	if err != nil {
		return nil, err
	}

	var auth authn.Authenticator = authn.Anonymous
	if cfg.Login != "" {
		if auth, err = registryapi.ParseLogin(cfg.Login); err != nil {
			return nil, err
		}
	}

	transport := base
	if cfg.HTTP.RPS > 0 {
		transport = ratelimit.NewTransport(base, ratelimit.NewMemoryStore(cfg.HTTP.RPS, cfg.HTTP.Burst, log))
	}

	return registryapi.NewClient(cfg.Registry,
		registryapi.WithAuth(auth),
		registryapi.WithTransport(transport),
		registryapi.WithDigestMethod(method),
		registryapi.WithTimeout(cfg.HTTP.Timeout),
	)
}
