package cli

import (
	"fmt"

	"github.com/julianstephens/stitchlog/internal/constants"
)

type EntryAddCmd struct {
	Count    int    `arg:"" help:"Number of pieces."`
	Category string `help:"Quality category." default:"OK"`
	Session  string `help:"Session ID. Defaults to the most recent session of the active day."`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	if len(fmt.Sprint(c.Count)) > constants.MaxEntryDigits {
		return fmt.Errorf("count must have at most %d digits", constants.MaxEntryDigits)
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	entry, err := mgr.AddEntry(c.Session, c.Category, c.Count)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %d × %s (entry %s)\n", c.Count, c.Category, entry.ID)
	return nil
}

type EntryDeleteCmd struct {
	EntryID string `arg:"" help:"Entry ID to delete."`
	Session string `help:"Session ID. Defaults to the most recent session of the active day."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	if err := mgr.DeleteEntry(c.Session, c.EntryID); err != nil {
		return err
	}

	fmt.Printf("Deleted entry %s\n", c.EntryID)
	return nil
}
