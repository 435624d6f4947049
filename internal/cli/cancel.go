package cli

import "fmt"

type CancelCmd struct {
	ID string `arg:"" help:"Planned activity ID."`
}

func (c *CancelCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := ctx.Ledger.Cancel(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Cancelled: %s\n", activity.Text)
	return nil
}
