package retention

import (
	"context"
	"time"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/logging"
)

// AgeResolver maps a tag to the creation time recorded in its config blob.
type AgeResolver struct {
	client out.RegistryClient
}

// NewAgeResolver creates an AgeResolver backed by client.
func NewAgeResolver(client out.RegistryClient) *AgeResolver {
	return &AgeResolver{client: client}
}

// ResolveAge returns the tag creation time and true, or false when any step
// of the lookup fails. Failures are never returned to the caller.
func (r *AgeResolver) ResolveAge(ctx context.Context, repository, tag string) (time.Time, bool) {
	log := logging.FromCtx(ctx)

	config, err := r.client.GetTagConfig(ctx, repository, tag)
	if err != nil {
		log.Debug().Err(err).Str(logging.FieldTag, tag).Msg("tag config unavailable, age unknown")
		return time.Time{}, false
	}
	if config.Digest == "" {
		log.Debug().Str(logging.FieldTag, tag).Msg("tag config has no digest, age unknown")
		return time.Time{}, false
	}

	created, err := r.client.GetBlobCreated(ctx, repository, config)
	if err != nil {
		log.Debug().Err(err).
			Str(logging.FieldTag, tag).
			Str(logging.FieldDigest, config.Digest.String()).
			Msg("config blob unavailable, age unknown")
		return time.Time{}, false
	}

	return created, true
}
