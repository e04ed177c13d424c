package domain

import (
	"time"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// ConfigDescriptor points at the config blob of a manifest.
// Only Digest and MediaType are relied upon.
type ConfigDescriptor = ocispec.Descriptor

// Tag is a named reference inside a repository.
// CreatedAt is set once the age is resolved. Digest is only known after a
// fresh lookup right before deletion.
type Tag struct {
	Name      string
	CreatedAt time.Time
	Digest    digest.Digest
}

// RetentionPlan is the keep/delete partition of age-resolved tags,
// both sides ordered most recent first.
type RetentionPlan struct {
	Keep   []Tag
	Delete []Tag
}

// Outcome is the result of processing one delete candidate.
type Outcome int

const (
	OutcomeSkippedDryRun Outcome = iota
	OutcomeSkippedAlreadyHandled
	OutcomeDeleted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkippedDryRun:
		return "skipped-dry-run"
	case OutcomeSkippedAlreadyHandled:
		return "skipped-already-handled"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DeletionResult records what happened to one delete candidate.
type DeletionResult struct {
	Tag     string
	Digest  digest.Digest
	Outcome Outcome
	Err     error
	Hint    string
}

// DigestSet tracks digests already handled in one repository pass.
type DigestSet map[digest.Digest]struct{}

// NewDigestSet returns an empty set seeded with the given digests.
func NewDigestSet(seed ...digest.Digest) DigestSet {
	s := make(DigestSet, len(seed))
	for _, d := range seed {
		s.Add(d)
	}
	return s
}

// Add inserts d into the set.
func (s DigestSet) Add(d digest.Digest) {
	s[d] = struct{}{}
}

// Contains reports whether d was already handled.
func (s DigestSet) Contains(d digest.Digest) bool {
	_, ok := s[d]
	return ok
}

// RunMode selects how far a run goes.
type RunMode int

const (
	// ModeList computes and reports the plan only.
	ModeList RunMode = iota
	// ModeDryRun resolves digests for candidates but never deletes.
	ModeDryRun
	// ModeDelete deletes candidates.
	ModeDelete
)

func (m RunMode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeDryRun:
		return "dry-run"
	case ModeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ResolveRunMode maps the delete and dry-run switches to a mode.
// Dry-run wins over delete.
func ResolveRunMode(deleteEnabled, dryRun bool) RunMode {
	switch {
	case dryRun:
		return ModeDryRun
	case deleteEnabled:
		return ModeDelete
	default:
		return ModeList
	}
}
