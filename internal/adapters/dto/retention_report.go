// Package dto holds the machine-readable shapes of the retention report.
package dto

import (
	"time"

	"github.com/bnema/registry-cli/internal/domain"
)

// RunReport is the serialized form of a retention run.
type RunReport struct {
	ID           string             `json:"id" yaml:"id"`
	Registry     string             `json:"registry" yaml:"registry"`
	Mode         string             `json:"mode" yaml:"mode"`
	Keep         int                `json:"keep" yaml:"keep"`
	StartedAt    time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time          `json:"finished_at" yaml:"finished_at"`
	Totals       Totals             `json:"totals" yaml:"totals"`
	Repositories []RepositoryReport `json:"repositories" yaml:"repositories"`
}

// Totals mirrors domain.RunTotals.
type Totals struct {
	Repositories   int `json:"repositories" yaml:"repositories"`
	Skipped        int `json:"skipped" yaml:"skipped"`
	TagsListed     int `json:"tags_listed" yaml:"tags_listed"`
	TagsFiltered   int `json:"tags_filtered" yaml:"tags_filtered"`
	Unresolved     int `json:"unresolved" yaml:"unresolved"`
	Kept           int `json:"kept" yaml:"kept"`
	Candidates     int `json:"candidates" yaml:"candidates"`
	DryRun         int `json:"dry_run" yaml:"dry_run"`
	AlreadyHandled int `json:"already_handled" yaml:"already_handled"`
	Deleted        int `json:"deleted" yaml:"deleted"`
	Failed         int `json:"failed" yaml:"failed"`
}

// RepositoryReport is one repository pass.
type RepositoryReport struct {
	Name         string           `json:"name" yaml:"name"`
	Skipped      bool             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	TagsListed   int              `json:"tags_listed" yaml:"tags_listed"`
	TagsFiltered int              `json:"tags_filtered" yaml:"tags_filtered"`
	Unresolved   []string         `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Kept         []Tag            `json:"kept" yaml:"kept"`
	Candidates   []Tag            `json:"candidates" yaml:"candidates"`
	Results      []DeletionResult `json:"results,omitempty" yaml:"results,omitempty"`
}

// Tag is a tag with its resolved creation time.
type Tag struct {
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// DeletionResult is the outcome for one delete candidate.
type DeletionResult struct {
	Tag     string `json:"tag" yaml:"tag"`
	Digest  string `json:"digest,omitempty" yaml:"digest,omitempty"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
	Hint    string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// ErrorResponse is written instead of a report when the run aborts.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}

// NewRunReport converts a domain report.
func NewRunReport(r *domain.RunReport) RunReport {
	t := r.Totals()
	out := RunReport{
		ID:         r.ID,
		Registry:   r.Registry,
		Mode:       r.Mode.String(),
		Keep:       r.Keep,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Totals: Totals{
			Repositories:   t.Repositories,
			Skipped:        t.Skipped,
			TagsListed:     t.TagsListed,
			TagsFiltered:   t.TagsFiltered,
			Unresolved:     t.Unresolved,
			Kept:           t.Kept,
			Candidates:     t.Candidates,
			DryRun:         t.DryRun,
			AlreadyHandled: t.AlreadyHandled,
			Deleted:        t.Deleted,
			Failed:         t.Failed,
		},
		Repositories: make([]RepositoryReport, 0, len(r.Repositories)),
	}

	for _, repo := range r.Repositories {
		out.Repositories = append(out.Repositories, newRepositoryReport(repo))
	}
	return out
}

func newRepositoryReport(repo domain.RepositoryReport) RepositoryReport {
	out := RepositoryReport{
		Name:         repo.Name,
		Skipped:      repo.Skipped,
		TagsListed:   repo.TagsListed,
		TagsFiltered: repo.TagsFiltered,
		Unresolved:   repo.Unresolved,
		Kept:         newTags(repo.Kept),
		Candidates:   newTags(repo.Candidates),
	}
	for _, res := range repo.Results {
		dr := DeletionResult{
			Tag:     res.Tag,
			Digest:  res.Digest.String(),
			Outcome: res.Outcome.String(),
			Hint:    res.Hint,
		}
		if res.Err != nil {
			dr.Error = res.Err.Error()
		}
		out.Results = append(out.Results, dr)
	}
	return out
}

func newTags(tags []domain.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{Name: t.Name, CreatedAt: t.CreatedAt})
	}
	return out
}
