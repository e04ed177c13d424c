package domain

import "time"

// RepositoryReport summarizes one repository pass.
type RepositoryReport struct {
	Name         string
	TagsListed   int
	TagsFiltered int
	// Unresolved lists tags excluded from retention because their age is unknown.
	Unresolved []string
	Kept       []Tag
	Candidates []Tag
	Results    []DeletionResult
	// Skipped is set when no tag survived filtering.
	Skipped bool
}

// RunReport is the final summary of a retention run.
type RunReport struct {
	ID           string
	Registry     string
	Mode         RunMode
	Keep         int
	StartedAt    time.Time
	FinishedAt   time.Time
	Repositories []RepositoryReport
}

// RunTotals aggregates counts across repositories.
type RunTotals struct {
	Repositories   int
	Skipped        int
	TagsListed     int
	TagsFiltered   int
	Unresolved     int
	Kept           int
	Candidates     int
	DryRun         int
	AlreadyHandled int
	Deleted        int
	Failed         int
}

// Totals sums the per-repository reports.
func (r *RunReport) Totals() RunTotals {
	var t RunTotals
	for _, repo := range r.Repositories {
		t.Repositories++
		if repo.Skipped {
			t.Skipped++
		}
		t.TagsListed += repo.TagsListed
		t.TagsFiltered += repo.TagsFiltered
		t.Unresolved += len(repo.Unresolved)
		t.Kept += len(repo.Kept)
		t.Candidates += len(repo.Candidates)
		for _, res := range repo.Results {
			switch res.Outcome {
			case OutcomeSkippedDryRun:
				t.DryRun++
			case OutcomeSkippedAlreadyHandled:
				t.AlreadyHandled++
			case OutcomeDeleted:
				t.Deleted++
			case OutcomeFailed:
				t.Failed++
			}
		}
	}
	return t
}
