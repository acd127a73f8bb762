package main

import (
	"fmt"

	"github.com/fwojciec/linkcrawl"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if linkcrawl.ErrorCode(err) == linkcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'linkcrawl list' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
