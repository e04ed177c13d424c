package retention

import (
	"fmt"
	"slices"

	"github.com/bnema/registry-cli/internal/domain"
)

// Partition orders tags most recent first and splits them into the keep
// prefix and the delete remainder. Ties keep their input order.
func Partition(tags []domain.Tag, keep int) (domain.RetentionPlan, error) {
	if keep < 0 {
		return domain.RetentionPlan{}, fmt.Errorf("%w: got %d", domain.ErrNegativeRetention, keep)
	}

	ordered := slices.Clone(tags)
	slices.SortStableFunc(ordered, func(a, b domain.Tag) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	n := min(keep, len(ordered))
	return domain.RetentionPlan{
		Keep:   ordered[:n:n],
		Delete: ordered[n:],
	}, nil
}
