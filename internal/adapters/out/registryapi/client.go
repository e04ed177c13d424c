// Package registryapi implements the RegistryClient port over the
// Docker Registry HTTP API v2 using go-containerregistry.
package registryapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/opencontainers/go-digest"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

// Ensure Client implements out.RegistryClient.
var _ out.RegistryClient = (*Client)(nil)

// maxConfigSize bounds config blob reads.
const maxConfigSize = 8 << 20

// DigestMethod selects how tag digests are resolved.
type DigestMethod string

const (
	// DigestMethodHead reads Docker-Content-Digest from a HEAD request.
	DigestMethodHead DigestMethod = "HEAD"
	// DigestMethodGet fetches the manifest, for registries that omit the header on HEAD.
	DigestMethodGet DigestMethod = "GET"
)

// ParseDigestMethod validates a digest method name, case-insensitively.
func ParseDigestMethod(s string) (DigestMethod, error) {
	switch DigestMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case DigestMethodHead, "":
		return DigestMethodHead, nil
	case DigestMethodGet:
		return DigestMethodGet, nil
	default:
		return "", fmt.Errorf("%w: digest method must be HEAD or GET, got %q", domain.ErrInvalidConfig, s)
	}
}

// Client talks to one registry.
type Client struct {
	registry     name.Registry
	auth         authn.Authenticator
	transport    http.RoundTripper
	digestMethod DigestMethod
	timeout      time.Duration
}

// Option configures the Client.
type Option func(*Client)

// NewClient creates a client for the registry at endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	reg, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		registry:     reg,
		auth:         authn.Anonymous,
		transport:    remote.DefaultTransport,
		digestMethod: DigestMethodHead,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithAuth sets the authenticator used for every request.
func WithAuth(auth authn.Authenticator) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
	}
}

// WithTransport sets the base round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// WithDigestMethod sets how tag digests are resolved.
func WithDigestMethod(m DigestMethod) Option {
	return func(c *Client) {
		c.digestMethod = m
	}
}

// WithTimeout bounds each registry operation. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// ListRepositories returns the full catalog, following pagination.
func (c *Client) ListRepositories(ctx context.Context) ([]string, error) {
	ctx, cancel := c.operationCtx(ctx, "ListRepositories")
	defer cancel()
	log := logging.FromCtx(ctx)

	repositories, err := remote.Catalog(ctx, c.registry, c.remoteOptions(ctx)...)
	if err != nil {
		if status, ok := statusCode(err); ok {
			log.Warn().Int("status", status).Err(err).Msg("catalog request was not successful, treating as empty")
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repositories, nil
}

// ListTags returns the tags of repository, following pagination.
func (c *Client) ListTags(ctx context.Context, repository string) ([]string, error) {
	ctx, cancel := c.operationCtx(ctx, "ListTags")
	defer cancel()
	log := logging.FromCtx(ctx)

	repo, err := c.repository(repository)
	if err != nil {
		return nil, err
	}

	tags, err := remote.List(repo, c.remoteOptions(ctx)...)
	if err != nil {
		if status, ok := statusCode(err); ok {
			if status == http.StatusNotFound {
				log.Debug().Str(logging.FieldRepository, repository).Msg("repository not found, treating as empty")
			} else {
				log.Warn().Int("status", status).Err(err).Str(logging.FieldRepository, repository).Msg("tag list request was not successful, treating as empty")
			}
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list tags of %s: %w", repository, err)
	}
	return tags, nil
}

// GetTagConfig fetches the tag's manifest and returns its config descriptor.
// Index manifests have no config and yield domain.ErrConfigNotFound.
func (c *Client) GetTagConfig(ctx context.Context, repository, tag string) (domain.ConfigDescriptor, error) {
	ctx, cancel := c.operationCtx(ctx, "GetTagConfig")
	defer cancel()

	repo, err := c.repository(repository)
	if err != nil {
		return domain.ConfigDescriptor{}, err
	}

	desc, err := remote.Get(repo.Tag(tag), c.remoteOptions(ctx)...)
	if err != nil {
		return domain.ConfigDescriptor{}, normalizeError(err, domain.ErrManifestNotFound)
	}
	if desc.MediaType.IsIndex() {
		return domain.ConfigDescriptor{}, fmt.Errorf("%w: %s:%s is an index (%s)", domain.ErrConfigNotFound, repository, tag, desc.MediaType)
	}

	manifest, err := v1.ParseManifest(bytes.NewReader(desc.Manifest))
	if err != nil {
		return domain.ConfigDescriptor{}, fmt.Errorf("failed to parse manifest of %s:%s: %w", repository, tag, err)
	}
	if manifest.Config.Digest.Hex == "" {
		return domain.ConfigDescriptor{}, fmt.Errorf("%w: %s:%s", domain.ErrConfigNotFound, repository, tag)
	}

	configDigest, err := digest.Parse(manifest.Config.Digest.String())
	if err != nil {
		return domain.ConfigDescriptor{}, fmt.Errorf("%w: %s:%s: %v", domain.ErrConfigNotFound, repository, tag, err)
	}

	return domain.ConfigDescriptor{
		MediaType: string(manifest.Config.MediaType),
		Digest:    configDigest,
		Size:      manifest.Config.Size,
	}, nil
}

// GetBlobCreated downloads the config blob, sending its media type as the
// Accept header, and returns the recorded creation time.
func (c *Client) GetBlobCreated(ctx context.Context, repository string, config domain.ConfigDescriptor) (time.Time, error) {
	ctx, cancel := c.operationCtx(ctx, "GetBlobCreated")
	defer cancel()

	if err := config.Digest.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrBlobNotFound, err)
	}

	repo, err := c.repository(repository)
	if err != nil {
		return time.Time{}, err
	}

	rt, err := transport.NewWithContext(ctx, c.registry, c.auth, c.transport, []string{repo.Scope(transport.PullScope)})
	if err != nil {
		return time.Time{}, normalizeError(err, domain.ErrBlobNotFound)
	}

	u := url.URL{
		Scheme: c.registry.Scheme(),
		Host:   c.registry.RegistryStr(),
		Path:   fmt.Sprintf("/v2/%s/blobs/%s", repo.RepositoryStr(), config.Digest),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to create blob request: %w", err)
	}
	if config.MediaType != "" {
		req.Header.Set("Accept", config.MediaType)
	}

	resp, err := (&http.Client{Transport: rt}).Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch blob %s: %w", config.Digest, err)
	}
	defer resp.Body.Close()

	if err := transport.CheckError(resp, http.StatusOK); err != nil {
		return time.Time{}, normalizeError(err, domain.ErrBlobNotFound)
	}

	cfg, err := v1.ParseConfigFile(io.LimitReader(resp.Body, maxConfigSize))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse config blob %s: %w", config.Digest, err)
	}
	if cfg.Created.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrCreatedNotFound, config.Digest)
	}
	return cfg.Created.Time, nil
}

// GetTagDigest resolves the current manifest digest of a tag.
func (c *Client) GetTagDigest(ctx context.Context, repository, tag string) (digest.Digest, error) {
	ctx, cancel := c.operationCtx(ctx, "GetTagDigest")
	defer cancel()

	repo, err := c.repository(repository)
	if err != nil {
		return "", err
	}

	var hash v1.Hash
	switch c.digestMethod {
	case DigestMethodGet:
		desc, err := remote.Get(repo.Tag(tag), c.remoteOptions(ctx)...)
		if err != nil {
			return "", normalizeError(err, domain.ErrDigestNotFound)
		}
		hash = desc.Digest
	default:
		desc, err := remote.Head(repo.Tag(tag), c.remoteOptions(ctx)...)
		if err != nil {
			return "", normalizeError(err, domain.ErrDigestNotFound)
		}
		hash = desc.Digest
	}

	dgst, err := digest.Parse(hash.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s:%s: %v", domain.ErrDigestNotFound, repository, tag, err)
	}
	return dgst, nil
}

// DeleteManifest deletes a manifest by digest. Any refusal from the registry
// is reported as domain.ErrDeleteRejected.
func (c *Client) DeleteManifest(ctx context.Context, repository string, dgst digest.Digest) error {
	ctx, cancel := c.operationCtx(ctx, "DeleteManifest")
	defer cancel()

	if err := dgst.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDigestNotFound, err)
	}

	repo, err := c.repository(repository)
	if err != nil {
		return err
	}

	if err := remote.Delete(repo.Digest(dgst.String()), c.remoteOptions(ctx)...); err != nil {
		if _, ok := statusCode(err); ok {
			return fmt.Errorf("%w: %w", domain.ErrDeleteRejected, err)
		}
		return fmt.Errorf("failed to delete %s@%s: %w", repository, dgst, err)
	}

	log := logging.FromCtx(ctx)
	log.Debug().
		Str(logging.FieldRepository, repository).
		Str(logging.FieldDigest, dgst.String()).
		Msg("manifest deleted")
	return nil
}

func (c *Client) repository(repository string) (name.Repository, error) {
	if err := ValidateRepository(repository); err != nil {
		return name.Repository{}, err
	}
	return c.registry.Repo(repository), nil
}

// remoteOptions disables go-containerregistry's own retries so a request is
// attempted exactly once.
func (c *Client) remoteOptions(ctx context.Context) []remote.Option {
	return []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuth(c.auth),
		remote.WithTransport(c.transport),
		remote.WithRetryBackoff(remote.Backoff{Steps: 1}),
	}
}

func (c *Client) operationCtx(ctx context.Context, op string) (context.Context, context.CancelFunc) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "registryapi",
		"operation":          op,
	})
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// statusCode reports the HTTP status carried by a registry error.
func statusCode(err error) (int, bool) {
	var terr *transport.Error
	if errors.As(err, &terr) {
		return terr.StatusCode, true
	}
	return 0, false
}

// normalizeError maps a 404 onto notFound and keeps the original error chain.
func normalizeError(err error, notFound error) error {
	if status, ok := statusCode(err); ok && status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", notFound, err)
	}
	return err
}
