// Package retention implements the tag retention use case.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/registry-cli/internal/boundaries/in"
	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
)

// Ensure Service implements in.RetentionService.
var _ in.RetentionService = (*Service)(nil)

// Config is the read-only run configuration.
type Config struct {
	// Registry is only used to label the report.
	Registry string
	// Repository restricts the run to one repository and bypasses the
	// repository listing. RepositoryPatterns still apply to it.
	Repository         string
	RepositoryPatterns []string
	TagPatterns        []string
	Keep               int
	Mode               domain.RunMode
	// ProtectKeptDigests seeds each repository's ignore set with the digests
	// of kept tags so aliased candidates cannot remove them.
	ProtectKeptDigests bool
}

// Service drives retention across repositories, one at a time.
type Service struct {
	client     out.RegistryClient
	events     out.EventPublisher
	cfg        Config
	repoFilter *TagFilter
	tagFilter  *TagFilter
	ages       *AgeResolver
	deleter    *Deleter
	now        func() time.Time
}

// NewService validates cfg and creates a retention service.
// Configuration errors are reported here, before any registry call.
func NewService(client out.RegistryClient, cfg Config, events out.EventPublisher) (*Service, error) {
	if cfg.Keep < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrNegativeRetention, cfg.Keep)
	}

	repoFilter, err := NewTagFilter(cfg.RepositoryPatterns)
	if err != nil {
		return nil, fmt.Errorf("repository filter: %w", err)
	}
	tagFilter, err := NewTagFilter(cfg.TagPatterns)
	if err != nil {
		return nil, fmt.Errorf("tag filter: %w", err)
	}

	return &Service{
		client:     client,
		events:     events,
		cfg:        cfg,
		repoFilter: repoFilter,
		tagFilter:  tagFilter,
		ages:       NewAgeResolver(client),
		deleter:    NewDeleter(client),
		now:        time.Now,
	}, nil
}

// Run applies retention to every target repository. Any listing failure
// aborts the run and no report is returned.
func (s *Service) Run(ctx context.Context) (*domain.RunReport, error) {
	runID := uuid.NewString()
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "ApplyRetention",
		logging.FieldRunID:   runID,
		"mode":               s.cfg.Mode.String(),
		"keep":               s.cfg.Keep,
	})
	log := logging.FromCtx(ctx)

	report := &domain.RunReport{
		ID:        runID,
		Registry:  s.cfg.Registry,
		Mode:      s.cfg.Mode,
		Keep:      s.cfg.Keep,
		StartedAt: s.now(),
	}

	repositories, err := s.targetRepositories(ctx)
	if err != nil {
		return nil, s.abort(ctx, runID, log.WrapErr(err, "failed to list repositories"))
	}

	s.publish(ctx, domain.EventRunStarted, domain.RunStartedPayload{
		RunID:        runID,
		Registry:     s.cfg.Registry,
		Mode:         s.cfg.Mode,
		Keep:         s.cfg.Keep,
		Repositories: repositories,
	})
	log.Info().Int("repositories", len(repositories)).Msg("starting retention run")

	for _, repository := range repositories {
		if err := ctx.Err(); err != nil {
			return nil, s.abort(ctx, runID, err)
		}

		repoReport, err := s.processRepository(ctx, runID, repository)
		if err != nil {
			return nil, s.abort(ctx, runID, err)
		}
		report.Repositories = append(report.Repositories, repoReport)
	}

	report.FinishedAt = s.now()
	totals := report.Totals()
	log.Info().
		Int("deleted", totals.Deleted).
		Int("failed", totals.Failed).
		Int("unresolved", totals.Unresolved).
		Msg("retention run finished")

	s.publish(ctx, domain.EventRunFinished, domain.RunFinishedPayload{Report: report})
	return report, nil
}

// ProcessRepository applies retention to a single repository.
func (s *Service) ProcessRepository(ctx context.Context, repository string) (domain.RepositoryReport, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "usecase",
		logging.FieldUseCase: "ProcessRepository",
	})
	return s.processRepository(ctx, "", repository)
}

func (s *Service) targetRepositories(ctx context.Context) ([]string, error) {
	if s.cfg.Repository != "" {
		return s.repoFilter.Filter([]string{s.cfg.Repository}), nil
	}

	repositories, err := s.client.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	return s.repoFilter.Filter(repositories), nil
}

func (s *Service) processRepository(ctx context.Context, runID, repository string) (domain.RepositoryReport, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{logging.FieldRepository: repository})
	log := logging.FromCtx(ctx)

	tags, err := s.client.ListTags(ctx, repository)
	if err != nil {
		return domain.RepositoryReport{}, log.WrapErr(err, "failed to list tags")
	}

	filtered := s.tagFilter.Filter(tags)
	report := domain.RepositoryReport{
		Name:         repository,
		TagsListed:   len(tags),
		TagsFiltered: len(filtered),
	}

	if len(filtered) == 0 {
		log.Debug().Int("tags", len(tags)).Msg("no tags left after filtering, skipping repository")
		report.Skipped = true
		s.publish(ctx, domain.EventRepositorySkipped, domain.RepositorySkippedPayload{
			RunID:      runID,
			Repository: repository,
			TagsListed: len(tags),
		})
		return report, nil
	}

	resolved := make([]domain.Tag, 0, len(filtered))
	for _, name := range filtered {
		created, ok := s.ages.ResolveAge(ctx, repository, name)
		if !ok {
			report.Unresolved = append(report.Unresolved, name)
			continue
		}
		resolved = append(resolved, domain.Tag{Name: name, CreatedAt: created})
	}
	if len(report.Unresolved) > 0 {
		log.Warn().
			Strs("tags", report.Unresolved).
			Msg("tags without a resolvable creation time are excluded from retention")
	}

	plan, err := Partition(resolved, s.cfg.Keep)
	if err != nil {
		return domain.RepositoryReport{}, err
	}
	report.Kept = plan.Keep
	report.Candidates = plan.Delete

	s.publish(ctx, domain.EventRepositoryPlanned, domain.RepositoryPlannedPayload{
		RunID:        runID,
		Repository:   repository,
		TagsListed:   report.TagsListed,
		TagsFiltered: report.TagsFiltered,
		Unresolved:   report.Unresolved,
		Plan:         plan,
	})

	if s.cfg.Mode == domain.ModeList {
		return report, nil
	}

	ignore := domain.NewDigestSet()
	if s.cfg.ProtectKeptDigests && s.cfg.Mode == domain.ModeDelete {
		s.protectKept(ctx, repository, plan.Keep, ignore)
	}

	dryRun := s.cfg.Mode == domain.ModeDryRun
	for _, tag := range plan.Delete {
		result := s.deleter.Delete(ctx, repository, tag, dryRun, ignore)
		if result.Outcome == domain.OutcomeFailed {
			log.Warn().Err(result.Err).Str(logging.FieldTag, tag.Name).Msg("tag deletion failed")
		}
		report.Results = append(report.Results, result)
		s.publish(ctx, domain.EventTagProcessed, domain.TagProcessedPayload{
			RunID:      runID,
			Repository: repository,
			Result:     result,
		})
	}

	return report, nil
}

// protectKept adds the current digests of kept tags to ignore.
// A kept tag whose digest cannot be resolved stays unprotected.
func (s *Service) protectKept(ctx context.Context, repository string, kept []domain.Tag, ignore domain.DigestSet) {
	log := logging.FromCtx(ctx)
	for _, tag := range kept {
		dgst, err := s.client.GetTagDigest(ctx, repository, tag.Name)
		if err != nil || dgst == "" {
			log.Warn().Err(err).Str(logging.FieldTag, tag.Name).Msg("could not resolve kept tag digest, it is not protected")
			continue
		}
		ignore.Add(dgst)
	}
}

func (s *Service) abort(ctx context.Context, runID string, err error) error {
	s.publish(ctx, domain.EventRunAborted, domain.RunAbortedPayload{RunID: runID, Err: err})
	return fmt.Errorf("%w: %w", domain.ErrRunAborted, err)
}

func (s *Service) publish(ctx context.Context, eventType domain.EventType, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		log := logging.FromCtx(ctx)
		log.Warn().Err(err).Str(logging.FieldEvent, string(eventType)).Msg("failed to publish event")
	}
}
