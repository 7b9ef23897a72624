package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/stitchlog/internal/export"
)

type ExportCmd struct {
	From  string   `help:"Start date (YYYY-MM-DD). Defaults to the oldest recorded day."`
	To    string   `help:"End date (YYYY-MM-DD). Defaults to today."`
	User  []string `help:"Profile IDs to include. Defaults to every profile."`
	Cloth string   `help:"Only sessions whose cloth type contains this text."`
	Out   string   `help:"Output file. Defaults to stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	users := mgr.Users()
	today := time.Now().UTC().Format("2006-01-02")
	from, to := export.DefaultRange(users, today)
	if c.From != "" {
		if from, err = parseDate(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = parseDate(c.To); err != nil {
			return err
		}
	}

	filter := export.Filter{StartDate: from, EndDate: to, ClothType: c.Cloth}
	if len(c.User) > 0 {
		filter.UserIDs = make(map[string]bool, len(c.User))
		for _, id := range c.User {
			filter.UserIDs[id] = true
		}
	}

	rows := export.BuildRows(users, filter)

	out := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, rows); err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Printf("Exported %d row(s) to %s\n", len(rows), c.Out)
	}
	return nil
}
