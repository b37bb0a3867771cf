// Package report renders build progress, summaries and target listings.
// Human output is colored with pterm; json and yaml renderings carry the
// same data for tooling.
package report

import (
	"github.com/pterm/pterm"
	"github.com/vk/litemake/internal/node"
)

var (
	PassedColorFG  = pterm.FgLightGreen
	PassedStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	SkippedColorFG = pterm.FgYellow
	SkippedStyleBG = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	FailedColorFG  = pterm.FgRed
	FailedStyleBG  = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
)

// StatusColor returns the foreground color of a status.
func StatusColor(s node.Status) pterm.Color {
	switch s {
	case node.StatusPassed:
		return PassedColorFG
	case node.StatusSkipped:
		return SkippedColorFG
	case node.StatusFailed:
		return FailedColorFG
	default:
		return pterm.FgDefault
	}
}

// statusTag renders a fixed-width status badge.
func statusTag(s node.Status) string {
	switch s {
	case node.StatusPassed:
		return PassedStyleBG.Sprint(" PASSED ")
	case node.StatusSkipped:
		return SkippedStyleBG.Sprint(" SKIPPED")
	case node.StatusFailed:
		return FailedStyleBG.Sprint(" FAILED ")
	default:
		return pterm.NewStyle(pterm.FgGray).Sprint(" PENDING")
	}
}
