package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/earnings"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type SessionStartCmd struct {
	ClothType string  `arg:"" optional:"" help:"Cloth type name."`
	Preset    string  `help:"Start from a preset (name or ID) instead of a raw name."`
	Rate      float64 `help:"Per-piece rate in rupees." default:"0"`
}

func (c *SessionStartCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.ClothType)
	rate := c.Rate

	if c.Preset != "" {
		user, ok := mgr.ActiveUser()
		if !ok {
			return fmt.Errorf("no active profile")
		}
		preset, err := findPreset(user, c.Preset)
		if err != nil {
			return err
		}
		name = preset.Name
		if rate == 0 {
			rate = preset.Rate
		}
	}

	if name == "" {
		return fmt.Errorf("cloth type name required (or use --preset)")
	}

	session, err := mgr.StartSession(name, rate)
	if err != nil {
		return err
	}

	fmt.Printf("Started session %q (ID: %s)\n", session.ClothType, session.ID)
	return nil
}

func findPreset(user models.User, ref string) (models.ClothTypePreset, error) {
	for _, preset := range user.ClothTypePresets {
		if preset.ID == ref || strings.EqualFold(preset.Name, ref) {
			return preset, nil
		}
	}
	return models.ClothTypePreset{}, fmt.Errorf("preset not found: %s", ref)
}

type SessionListCmd struct{}

func (c *SessionListCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	record, ok := mgr.ActiveRecord()
	if !ok {
		fmt.Println("No active day. Run: stitchlog date today")
		return nil
	}

	fmt.Printf("Sessions for %s:\n", record.Date)
	if len(record.Sessions) == 0 {
		fmt.Println("  none")
	}
	for _, session := range record.Sessions {
		fmt.Printf("  %-20s %4d pieces  %s\n", session.ClothType, earnings.TotalPieces(session), session.ID)
	}
	return nil
}

// resolveSessions maps session ids to (record, session) addresses across
// every record of the active user, trashed sessions included.
func resolveSessions(user models.User, ids []string) ([]models.SessionToDelete, error) {
	var items []models.SessionToDelete
	for _, id := range ids {
		found := false
		for _, record := range user.DailyRecords {
			for _, session := range record.Sessions {
				if session.ID == id {
					items = append(items, models.SessionToDelete{RecordID: record.ID, SessionID: session.ID})
					found = true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("session not found: %s", id)
		}
	}
	return items, nil
}

type SessionArchiveCmd struct {
	IDs     []string `arg:"" help:"Session IDs to move to the trash."`
	Confirm string   `help:"Type ARCHIVE to confirm."`
}

func (c *SessionArchiveCmd) Run(ctx *Context) error {
	if c.Confirm != constants.ArchiveConfirmLiteral {
		return fmt.Errorf("archiving requires --confirm %s", constants.ArchiveConfirmLiteral)
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	items, err := resolveSessions(user, c.IDs)
	if err != nil {
		return err
	}
	if err := mgr.ArchiveSessions(items); err != nil {
		return err
	}

	fmt.Printf("Moved %d session(s) to the trash. They will be deleted after %d days.\n",
		len(items), int(constants.TrashRetention.Hours()/24))
	return nil
}

type SessionRestoreCmd struct {
	IDs []string `arg:"" help:"Session IDs to restore from the trash."`
}

func (c *SessionRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	items, err := resolveSessions(user, c.IDs)
	if err != nil {
		return err
	}
	if err := mgr.RestoreSessions(items); err != nil {
		return err
	}

	fmt.Printf("Restored %d session(s)\n", len(items))
	return nil
}

type SessionDeleteCmd struct {
	IDs []string `arg:"" help:"Session IDs to delete permanently."`
	Yes bool     `help:"Skip the confirmation. Deletion cannot be undone."`
}

func (c *SessionDeleteCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("permanent deletion cannot be undone; re-run with --yes to proceed")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	items, err := resolveSessions(user, c.IDs)
	if err != nil {
		return err
	}
	if err := mgr.PermanentlyDeleteSessions(items); err != nil {
		return err
	}

	fmt.Printf("Permanently deleted %d session(s)\n", len(items))
	return nil
}

type SessionCategoryAddCmd struct {
	Name    string `arg:"" help:"Category name to add."`
	Session string `help:"Session ID. Defaults to the most recent session of the active day."`
}

func (c *SessionCategoryAddCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}
	if err := mgr.AddCustomCategory(c.Session, c.Name); err != nil {
		return err
	}
	fmt.Printf("Added category %q\n", strings.TrimSpace(c.Name))
	return nil
}

type SessionCategoryRemoveCmd struct {
	Name    string `arg:"" help:"Category name to remove."`
	Session string `help:"Session ID. Defaults to the most recent session of the active day."`
}

func (c *SessionCategoryRemoveCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}
	if err := mgr.RemoveCustomCategory(c.Session, c.Name); err != nil {
		return err
	}
	fmt.Printf("Removed category %q\n", c.Name)
	return nil
}

// TrashListCmd shows every trashed session and when it expires.
type TrashListCmd struct{}

func (c *TrashListCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	items := tracker.TrashItems(user)
	if len(items) == 0 {
		fmt.Println("Trash is empty")
		return nil
	}

	for _, item := range items {
		deletedAt := ""
		if item.Session.DeletedAt != nil {
			deletedAt = *item.Session.DeletedAt
		}
		fmt.Printf("%s  %-20s %4d pieces  trashed %s  %s\n",
			item.Date, item.Session.ClothType, earnings.TotalPieces(item.Session), deletedAt, item.Session.ID)
	}
	return nil
}
