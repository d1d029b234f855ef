package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/aimy-go/internal/domain"
)

// renderResult prints a pipeline outcome for terminal consumption.
func renderResult(w io.Writer, result domain.ExecutionResult) {
	if result.Success {
		fmt.Fprintln(w, result.Message)
		for _, save := range result.Saves {
			if save.Err == "" {
				fmt.Fprintf(w, "  saved: %s\n", save.Path)
			}
		}
		return
	}

	switch result.Type {
	case domain.ResultPermissionDenied:
		fmt.Fprintf(w, "Permission denied: %s\n", result.Error)
	default:
		fmt.Fprintf(w, "Sorry, that didn't work: %s\n", result.Error)
	}
}

// renderHistory prints interaction records, newest first.
func renderHistory(w io.Writer, records []domain.InteractionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No interactions recorded yet.")
		return
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%-14s %-20s %-8s %q\n",
			humanize.Time(rec.Timestamp), rec.Type, status, truncate(rec.Input, 60))
	}
	fmt.Fprintf(w, "%d interaction(s)\n", len(records))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
