// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/HCRitter/PSCommandShortener/pkg/shortener"
)

// renderStats prints the per-invocation savings report for one input.
func renderStats(w io.Writer, name string, result shortener.Result) {
	fmt.Fprintln(w, TitleStyle.Render(name))
	if len(result.Changes) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("  nothing to shorten"))
		return
	}

	for _, change := range result.Changes {
		fmt.Fprintf(w, "  %s  %s -> %s  %s\n",
			CommandStyle.Render(change.Canonical),
			change.Before,
			change.After,
			SavingsStyle.Render(fmt.Sprintf("(-%d)", change.Saved)),
		)
	}
	fmt.Fprintf(w, "  %s\n", SavingsStyle.Render(fmt.Sprintf("saved %d characters", result.Saved)))
}
