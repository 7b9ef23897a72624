package cli

import (
	"fmt"

	"github.com/julianstephens/stitchlog/internal/earnings"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type DayCmd struct {
	Date string `arg:"" optional:"" default:"today" help:"Date to show (YYYY-MM-DD or 'today')."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	var records []models.DailyRecord
	for _, record := range tracker.VisibleRecords(user.DailyRecords) {
		if record.Date == date {
			records = append(records, record)
		}
	}

	fmt.Printf("%s — %s\n", user.Name, date)
	if len(records) == 0 {
		fmt.Println("  no work recorded")
	}

	dayTotal := 0.0
	for _, record := range records {
		for _, session := range record.Sessions {
			pieces := earnings.TotalPieces(session)
			amount := earnings.SessionEarnings(session)
			dayTotal += amount

			line := fmt.Sprintf("  %-20s %4d pieces", session.ClothType, pieces)
			if session.Rate > 0 {
				line += fmt.Sprintf("  @ %s/pc  = %s", formatCurrency(session.Rate), formatCurrency(amount))
			}
			fmt.Println(line)
			fmt.Printf("    id: %s\n", session.ID)
		}
	}
	if dayTotal > 0 {
		fmt.Printf("  day total: %s\n", formatCurrency(dayTotal))
	}

	progress := earnings.GoalProgress(user, tracker.VisibleRecords(user.DailyRecords))
	if user.EarningsGoal > 0 {
		fmt.Printf("  goal: %s of %s (%.0f%%)\n",
			formatCurrency(progress.Earnings), formatCurrency(user.EarningsGoal), progress.Percent)
	}

	return nil
}

type DateCmd struct {
	Date string `arg:"" help:"Date to switch to (YYYY-MM-DD or 'today')."`
}

func (c *DateCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	if err := mgr.ChangeDate(date); err != nil {
		return err
	}

	if record, ok := mgr.ActiveRecord(); ok {
		fmt.Printf("Active day is now %s (%d session(s))\n", record.Date, len(record.Sessions))
	}
	return nil
}
