package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

var (
	healthyColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed, color.Bold)
)

func renderReport(w io.Writer, report *domain.MaintenanceReport, format string) error {
	switch format {
	case "yaml":
		return yaml.NewEncoder(w).Encode(report)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "text", "":
		renderReportText(w, report)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderReportText(w io.Writer, report *domain.MaintenanceReport) {
	fmt.Fprintf(w, "\n=== Maintenance Report (%s mode) ===\n", report.Mode)

	for _, name := range report.Populated() {
		res := report.Result(name)
		fmt.Fprintf(w, "\n[%s]\n", name)
		fmt.Fprintf(w, "  Outcome: %s\n", outcomeColor(res.Outcome).Sprint(res.Outcome))

		if res.LaunchError != "" {
			fmt.Fprintf(w, "  Launch error: %s\n", res.LaunchError)
			continue
		}

		fmt.Fprintf(w, "  Exit status: %d\n", res.Invocation.ExitStatus)
		for _, u := range res.Updates {
			if u.Size != "" {
				fmt.Fprintf(w, "    - %s %s (%s)\n", u.ID, u.Title, u.Size)
			} else {
				fmt.Fprintf(w, "    - %s %s\n", u.ID, u.Title)
			}
		}
	}

	fmt.Fprintln(w, "\n====================================")
}

func outcomeColor(outcome domain.OutcomeKind) *color.Color {
	switch outcome {
	case domain.Healthy:
		return healthyColor
	case domain.UnexpectedFailure:
		return failColor
	default:
		return warnColor
	}
}

func renderFacts(w io.Writer, facts *domain.HostFacts, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(facts)
	case "yaml", "":
		return yaml.NewEncoder(w).Encode(facts)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
