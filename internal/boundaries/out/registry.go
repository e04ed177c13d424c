package out

import (
	"context"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/bnema/registry-cli/internal/domain"
)

// RegistryClient defines the registry operations the retention engine relies on.
type RegistryClient interface {
	// ListRepositories returns every repository name in the catalog.
	// A non-success response yields an empty list. Transport failures are returned.
	ListRepositories(ctx context.Context) ([]string, error)

	// ListTags returns the tags of a repository.
	// A non-success response yields an empty list. Transport failures are returned.
	ListTags(ctx context.Context, repository string) ([]string, error)

	// GetTagConfig returns the config descriptor of the tag's manifest.
	// Returns domain.ErrConfigNotFound when the manifest has no config.
	GetTagConfig(ctx context.Context, repository, tag string) (domain.ConfigDescriptor, error)

	// GetBlobCreated fetches the config blob and returns its creation time.
	// Returns domain.ErrCreatedNotFound when the blob has no creation field.
	GetBlobCreated(ctx context.Context, repository string, config domain.ConfigDescriptor) (time.Time, error)

	// GetTagDigest returns the current manifest digest of a tag without fetching the body.
	GetTagDigest(ctx context.Context, repository, tag string) (digest.Digest, error)

	// DeleteManifest deletes the manifest identified by dgst.
	DeleteManifest(ctx context.Context, repository string, dgst digest.Digest) error
}
