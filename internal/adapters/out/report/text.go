package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/registry-cli/internal/adapters/in/cli/ui/components"
	"github.com/bnema/registry-cli/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/registry-cli/internal/domain"
)

var writeLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

// Text renders a human readable report with a summary table. Lines are held
// until the run finishes and dropped if it aborts, so an aborted run leaves
// stdout empty. Deletions already performed are still logged on stderr.
type Text struct {
	sticky
	w       io.Writer
	mode    domain.RunMode
	pending []string
}

// NewText creates a text renderer.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) CanHandle(domain.EventType) bool {
	return true
}

func (t *Text) Handle(_ context.Context, event domain.Event) error {
	var lines []string
	switch p := event.Data.(type) {
	case domain.RunStartedPayload:
		t.mode = p.Mode
		lines = t.runStarted(p)
	case domain.RepositorySkippedPayload:
		lines = []string{
			styles.RenderListItem(styles.Theme.Bold.Render(p.Repository) + " " +
				styles.Theme.Muted.Render(fmt.Sprintf("no tags matched (%d listed)", p.TagsListed))),
		}
	case domain.RepositoryPlannedPayload:
		lines = t.repositoryPlanned(p)
	case domain.TagProcessedPayload:
		lines = tagProcessed(p.Result)
	case domain.RunAbortedPayload:
		t.pending = nil
		return nil
	case domain.RunFinishedPayload:
		if p.Report != nil {
			lines = summary(p.Report)
		}
		return t.flush(lines)
	}

	t.pending = append(t.pending, lines...)
	return nil
}

func (t *Text) flush(tail []string) error {
	lines := append(t.pending, tail...)
	t.pending = nil
	for _, line := range lines {
		if err := writeLine(t.w, line); err != nil {
			return t.set(err)
		}
	}
	return nil
}

func (t *Text) runStarted(p domain.RunStartedPayload) []string {
	title := styles.Theme.Title.Render(styles.IconImage + " " + p.Registry)
	meta := styles.Theme.Muted.Render(fmt.Sprintf("mode %s, keep %d, %d repositories", p.Mode, p.Keep, len(p.Repositories)))
	return []string{title + " " + meta}
}

func (t *Text) repositoryPlanned(p domain.RepositoryPlannedPayload) []string {
	head := fmt.Sprintf("%d listed, %d matched, keep %d, %d to delete",
		p.TagsListed, p.TagsFiltered, len(p.Plan.Keep), len(p.Plan.Delete))
	lines := []string{
		styles.RenderListItem(styles.Theme.Bold.Render(p.Repository) + " " + styles.Theme.Muted.Render(head)),
	}

	if n := len(p.Unresolved); n > 0 {
		lines = append(lines, "    "+styles.RenderWarning(
			fmt.Sprintf("%d tags without a creation time were left alone: %s", n, strings.Join(p.Unresolved, ", "))))
	}

	if t.mode == domain.ModeList {
		for _, tag := range p.Plan.Delete {
			lines = append(lines, fmt.Sprintf("    %s %s",
				styles.Theme.Warning.Render(tag.Name),
				styles.Theme.Muted.Render("created "+tag.CreatedAt.UTC().Format(time.RFC3339))))
		}
	}
	return lines
}

func tagProcessed(res domain.DeletionResult) []string {
	line := fmt.Sprintf("    %s %s", res.Tag, styles.RenderOutcome(res.Outcome.String()))
	if res.Digest != "" {
		line += " " + styles.Theme.Muted.Render(res.Digest.String())
	}
	lines := []string{line}
	if res.Err != nil {
		lines = append(lines, "      "+styles.Theme.Error.Render(res.Err.Error()))
	}
	if res.Hint != "" {
		lines = append(lines, "      "+styles.RenderInfo(res.Hint))
	}
	return lines
}

func summary(r *domain.RunReport) []string {
	rows := make([][]string, 0, len(r.Repositories))
	for _, repo := range r.Repositories {
		var deleted, failed int
		for _, res := range repo.Results {
			switch res.Outcome {
			case domain.OutcomeDeleted:
				deleted++
			case domain.OutcomeFailed:
				failed++
			}
		}
		rows = append(rows, []string{
			repo.Name,
			strconv.Itoa(repo.TagsFiltered),
			strconv.Itoa(len(repo.Kept)),
			strconv.Itoa(len(repo.Candidates)),
			strconv.Itoa(deleted),
			strconv.Itoa(failed),
			strconv.Itoa(len(repo.Unresolved)),
		})
	}

	tot := r.Totals()
	lines := []string{""}
	if len(rows) > 0 {
		lines = append(lines, components.SummaryTable(rows))
	}

	totals := fmt.Sprintf("%d repositories, %d candidates, %d deleted, %d dry-run, %d already handled, %d failed, %d unresolved",
		tot.Repositories, tot.Candidates, tot.Deleted, tot.DryRun, tot.AlreadyHandled, tot.Failed, tot.Unresolved)
	switch {
	case tot.Failed > 0:
		lines = append(lines, styles.RenderWarning(totals))
	default:
		lines = append(lines, styles.RenderSuccess(totals))
	}
	return lines
}
