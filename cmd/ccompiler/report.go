package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"minic/pkg/diag"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorOK    = lipgloss.Color("#10B981")
	colorMuted = lipgloss.Color("#94A3B8")

	fileStyle = lipgloss.NewStyle().Bold(true)
	lineStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(6).
			Align(lipgloss.Right)
	codeStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true).
			Width(7)
	okStyle = lipgloss.NewStyle().
		Foreground(colorOK).
		Bold(true)
	summaryStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

// renderReport formats errs for a terminal, one error per row.
func renderReport(path string, errs []diag.Record) string {
	var sb strings.Builder
	sb.WriteString(fileStyle.Render(path))
	sb.WriteString("\n")

	if len(errs) == 0 {
		sb.WriteString(okStyle.Render("no errors"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, r := range errs {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			lineStyle.Render(fmt.Sprintf("%d", r.Line)),
			"  ",
			codeStyle.Render(r.Code.String()),
			r.Code.Describe(),
		)
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	noun := "errors"
	if len(errs) == 1 {
		noun = "error"
	}
	sb.WriteString(summaryStyle.Render(fmt.Sprintf("%d %s", len(errs), noun)))
	sb.WriteString("\n")
	return sb.String()
}
