package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/vk/litemake/internal/executor"
	"github.com/vk/litemake/internal/node"
)

// Summary is the outcome of one invocation.
type Summary struct {
	Package string          `json:"package" yaml:"package"`
	Targets []TargetSummary `json:"targets" yaml:"targets"`
	Totals  executor.Counts `json:"totals" yaml:"totals"`
}

// TargetSummary is the outcome of one target.
type TargetSummary struct {
	Name   string          `json:"name" yaml:"name"`
	Status node.Status     `json:"status" yaml:"status"`
	Counts executor.Counts `json:"counts" yaml:"counts"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// AddTarget records the results of one target and updates the totals. A
// target with a graph error counts as failed.
func (s *Summary) AddTarget(name string, results []executor.Result, err error) {
	ts := TargetSummary{Name: name, Counts: executor.Count(results), Status: node.StatusPassed}
	statuses := make([]node.Status, 0, len(results))
	for _, r := range results {
		statuses = append(statuses, r.Status)
	}
	if len(statuses) > 0 {
		ts.Status = node.Worst(statuses...)
	}
	if err != nil {
		ts.Status = node.StatusFailed
		ts.Error = err.Error()
	}
	s.Targets = append(s.Targets, ts)
	s.Totals.Merge(ts.Counts)
}

// Failed reports whether any node failed or any target could not be built.
func (s *Summary) Failed() bool {
	for _, t := range s.Targets {
		if t.Status == node.StatusFailed {
			return true
		}
	}
	return s.Totals.Failed > 0
}

// WriteSummary renders s in the given format.
func WriteSummary(w io.Writer, s *Summary, format Format) error {
	if format != Text {
		return encode(w, format, s)
	}

	data := pterm.TableData{{"Target", "Status", "Passed", "Skipped", "Failed"}}
	for _, t := range s.Targets {
		data = append(data, []string{
			t.Name,
			StatusColor(t.Status).Sprint(t.Status.String()),
			fmt.Sprint(t.Counts.Passed),
			fmt.Sprint(t.Counts.Skipped),
			fmt.Sprint(t.Counts.Failed),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, table)

	totals := fmt.Sprintf("%s passed, %s skipped, %s failed",
		PassedColorFG.Sprint(s.Totals.Passed),
		SkippedColorFG.Sprint(s.Totals.Skipped),
		FailedColorFG.Sprint(s.Totals.Failed))
	if s.Failed() {
		fmt.Fprintf(w, "%s %s\n", FailedStyleBG.Sprint(" Oh no! "), totals)
	} else {
		fmt.Fprintf(w, "%s %s\n", PassedStyleBG.Sprint(" All done! "), totals)
	}
	return nil
}
