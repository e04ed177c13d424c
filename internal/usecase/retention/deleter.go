package retention

import (
	"context"
	"fmt"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

// Deleter removes delete candidates one at a time, never sending the same
// digest to the registry twice within one ignore set.
type Deleter struct {
	client out.RegistryClient
}

// NewDeleter creates a Deleter backed by client.
func NewDeleter(client out.RegistryClient) *Deleter {
	return &Deleter{client: client}
}

// Delete processes one candidate tag. The digest is looked up fresh because
// tags can be retargeted between listing and deletion. Only a successful
// delete adds the digest to ignore.
func (d *Deleter) Delete(ctx context.Context, repository string, tag domain.Tag, dryRun bool, ignore domain.DigestSet) domain.DeletionResult {
	log := logging.FromCtx(ctx).With(map[string]any{logging.FieldTag: tag.Name})
	result := domain.DeletionResult{Tag: tag.Name}

	dgst, err := d.client.GetTagDigest(ctx, repository, tag.Name)
	if err == nil && dgst == "" {
		err = domain.ErrDigestNotFound
	}
	if err != nil {
		log.Debug().Err(err).Msg("could not resolve tag digest")
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("failed to resolve digest: %w", err)
		result.Hint = domain.DigestUnresolvedHint
		return result
	}
	result.Digest = dgst
	log = log.With(map[string]any{logging.FieldDigest: dgst.String()})

	if dryRun {
		log.Debug().Msg("dry run, not deleting")
		result.Outcome = domain.OutcomeSkippedDryRun
		return result
	}

	if ignore.Contains(dgst) {
		log.Debug().Msg("digest already handled")
		result.Outcome = domain.OutcomeSkippedAlreadyHandled
		return result
	}

	if err := d.client.DeleteManifest(ctx, repository, dgst); err != nil {
		log.Debug().Err(err).Msg("manifest delete failed")
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("failed to delete manifest: %w", err)
		result.Hint = domain.DeleteEnableHint
		return result
	}

	ignore.Add(dgst)
	log.Info().Msg("manifest deleted")
	result.Outcome = domain.OutcomeDeleted
	return result
}
