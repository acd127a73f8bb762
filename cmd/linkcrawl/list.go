package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, linkcrawl.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'linkcrawl crawl --save' to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  visited=%d failures=%d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status,
			len(r.Visited), len(r.Failures), r.SeedURL)
	}

	return nil
}
