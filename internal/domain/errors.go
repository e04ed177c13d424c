package domain

import "errors"

// Domain errors represent business-level failures shared across layers.
var (
	// Config errors
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrInvalidPattern        = errors.New("invalid name pattern")
	ErrNegativeRetention     = errors.New("retention count must be >= 0")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidRepositoryName = errors.New("invalid repository name")

	// Registry errors
	ErrManifestNotFound = errors.New("manifest not found")
	ErrConfigNotFound   = errors.New("config descriptor not found")
	ErrBlobNotFound     = errors.New("blob not found")
	ErrCreatedNotFound  = errors.New("blob has no creation time")
	ErrDigestNotFound   = errors.New("digest not found")
	ErrDeleteRejected   = errors.New("registry rejected manifest deletion")

	// Run errors
	ErrRunAborted = errors.New("retention run aborted")
)

// DeleteEnableHint is attached to failed deletions so operators know where to look.
const DeleteEnableHint = `make sure the registry allows deletes (REGISTRY_STORAGE_DELETE_ENABLED: "true")`

// DigestUnresolvedHint is attached when a listed tag no longer resolves.
const DigestUnresolvedHint = "the tag may have been removed or retargeted since it was listed"
