package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/stitchlog/internal/cli"
	"github.com/julianstephens/stitchlog/internal/logging"
	"github.com/julianstephens/stitchlog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/stitchlog/stitchlog.db"`

	Init cli.InitCmd `cmd:"" help:"Initialize stitchlog storage."`
	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive tracker." default:"1"`
	Day  cli.DayCmd  `cmd:"" help:"Show the work done on a day."`
	Date cli.DateCmd `cmd:"" help:"Switch the active day."`
	User struct {
		Add    cli.UserAddCmd    `cmd:"" help:"Add a work profile."`
		List   cli.UserListCmd   `cmd:"" help:"List work profiles."`
		Switch cli.UserSwitchCmd `cmd:"" help:"Switch the active profile."`
		Rename cli.UserRenameCmd `cmd:"" help:"Rename a profile."`
	} `cmd:"" help:"Manage work profiles."`
	Preset struct {
		Add    cli.PresetAddCmd    `cmd:"" help:"Add a cloth type preset."`
		List   cli.PresetListCmd   `cmd:"" help:"List cloth type presets."`
		Edit   cli.PresetEditCmd   `cmd:"" help:"Edit a preset."`
		Delete cli.PresetDeleteCmd `cmd:"" help:"Delete a preset."`
	} `cmd:"" help:"Manage cloth type presets."`
	Session struct {
		Start   cli.SessionStartCmd   `cmd:"" help:"Start a work session."`
		List    cli.SessionListCmd    `cmd:"" help:"List sessions of the active day."`
		Archive cli.SessionArchiveCmd `cmd:"" help:"Move sessions to the trash."`
		Restore cli.SessionRestoreCmd `cmd:"" help:"Restore sessions from the trash."`
		Delete  cli.SessionDeleteCmd  `cmd:"" help:"Delete sessions permanently."`
		Category struct {
			Add    cli.SessionCategoryAddCmd    `cmd:"" help:"Add a custom category to a session."`
			Remove cli.SessionCategoryRemoveCmd `cmd:"" help:"Remove a custom category from a session."`
		} `cmd:"" help:"Manage session categories."`
	} `cmd:"" help:"Manage work sessions."`
	Trash  cli.TrashListCmd `cmd:"" help:"List trashed sessions."`
	Entry  struct {
		Add    cli.EntryAddCmd    `cmd:"" help:"Record a piece count."`
		Delete cli.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Manage piece count entries."`
	Goal struct {
		Set   cli.GoalSetCmd   `cmd:"" help:"Set an earnings goal."`
		Show  cli.GoalShowCmd  `cmd:"" help:"Show goal progress."`
		Reset cli.GoalResetCmd `cmd:"" help:"Restart goal progress from now."`
	} `cmd:"" help:"Manage the earnings goal."`
	Export cli.ExportCmd `cmd:"" help:"Export work records as CSV."`
	Ask    cli.AskCmd    `cmd:"" help:"Ask Munshi Ji about your work."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Check the store for problems."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stitchlog"),
		kong.Description("Garment piece-work tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var provider storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		provider = storage.NewJSONStore(CLI.Config)
	} else {
		provider = storage.NewSQLiteStore(CLI.Config)
	}

	log := logging.New()
	appCtx := &cli.Context{
		Store: storage.New(provider, log),
		Log:   log,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
