package cli

import (
	"fmt"
	"strings"
)

type UserAddCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("profile name must not be empty")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, err := mgr.AddUser(name)
	if err != nil {
		return err
	}

	fmt.Printf("Added profile %q and made it active (ID: %s)\n", user.Name, user.ID)
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	active, _ := mgr.ActiveUser()
	for _, user := range mgr.Users() {
		marker := " "
		if user.ID == active.ID {
			marker = "*"
		}
		fmt.Printf("%s %-20s  %d day(s)  %s\n", marker, user.Name, len(user.DailyRecords), user.ID)
	}
	return nil
}

type UserSwitchCmd struct {
	ID string `arg:"" help:"Profile ID to switch to."`
}

func (c *UserSwitchCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	if err := mgr.SwitchUser(c.ID); err != nil {
		return err
	}

	if user, ok := mgr.ActiveUser(); ok {
		fmt.Printf("Switched to profile %q\n", user.Name)
	} else {
		// Switching does not validate existence; surface the state
		// instead of failing.
		fmt.Printf("Switched to profile %s (no such profile yet)\n", c.ID)
	}
	return nil
}

type UserRenameCmd struct {
	ID   string `arg:"" help:"Profile ID to rename."`
	Name string `arg:"" help:"New name."`
}

func (c *UserRenameCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("new name must not be empty")
	}

	if err := mgr.RenameUser(c.ID, c.Name); err != nil {
		return err
	}

	fmt.Printf("Renamed profile %s to %q\n", c.ID, strings.TrimSpace(c.Name))
	return nil
}
