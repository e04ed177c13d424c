// Package in defines input ports (interfaces) for use cases.
package in

import (
	"context"

	"github.com/bnema/registry-cli/internal/domain"
)

// RetentionService applies tag retention to a registry.
type RetentionService interface {
	// Run processes every target repository and returns the run report.
	// Listing failures abort the run and no report is returned.
	Run(ctx context.Context) (*domain.RunReport, error)

	// ProcessRepository applies retention to a single repository.
	ProcessRepository(ctx context.Context, repository string) (domain.RepositoryReport, error)
}
