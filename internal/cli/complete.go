package cli

import (
	"fmt"
	"time"
)

type CompleteCmd struct {
	ID string `arg:"" help:"Planned activity ID."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := ctx.Ledger.Complete(c.ID, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Completed: %s (+%d pts)\n", activity.Text, activity.Points)
	return nil
}
