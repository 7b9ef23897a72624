package cli

import (
	"fmt"

	"github.com/julianstephens/stitchlog/internal/earnings"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type GoalSetCmd struct {
	Amount float64 `arg:"" help:"Goal amount in rupees."`
}

func (c *GoalSetCmd) Run(ctx *Context) error {
	if c.Amount <= 0 {
		return fmt.Errorf("goal must be a positive amount")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	if err := mgr.SetEarningsGoal(user.ID, c.Amount); err != nil {
		return err
	}

	fmt.Printf("Goal set to %s, progress starts now\n", formatCurrency(c.Amount))
	return nil
}

type GoalShowCmd struct{}

func (c *GoalShowCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	progress := earnings.GoalProgress(user, tracker.VisibleRecords(user.DailyRecords))
	if user.EarningsGoal <= 0 {
		fmt.Printf("No goal set. Earnings so far: %s\n", formatCurrency(progress.Earnings))
		return nil
	}

	fmt.Printf("Goal: %s\n", formatCurrency(user.EarningsGoal))
	fmt.Printf("Earned: %s (%.0f%%)\n", formatCurrency(progress.Earnings), progress.Percent)
	if user.EarningsStart != "" {
		fmt.Printf("Counting since: %s\n", user.EarningsStart)
	}
	return nil
}

type GoalResetCmd struct {
	Yes bool `help:"Skip the confirmation. Progress counted so far is discarded."`
}

func (c *GoalResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("resetting discards progress counted so far; re-run with --yes to proceed")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	if err := mgr.ResetEarningsAnchor(user.ID); err != nil {
		return err
	}

	fmt.Println("Progress reset; earnings count from now")
	return nil
}
