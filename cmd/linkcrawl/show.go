package main

import (
	"fmt"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/markdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if linkcrawl.ErrorCode(err) == linkcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'linkcrawl list' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		}
		return err
	}

	return markdown.NewReportWriter(deps.Stdout).Write(run)
}
