package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/stitchlog/internal/models"
)

type PresetAddCmd struct {
	Name string  `arg:"" help:"Cloth type name."`
	Rate float64 `help:"Per-piece rate in rupees." default:"0"`
}

func (c *PresetAddCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	preset := models.ClothTypePreset{ID: uuid.New().String(), Name: name, Rate: c.Rate}
	presets := append(append([]models.ClothTypePreset{}, user.ClothTypePresets...), preset)
	if err := mgr.UpdateUserPresets(user.ID, presets); err != nil {
		return err
	}

	fmt.Printf("Added preset %q (ID: %s)\n", preset.Name, preset.ID)
	return nil
}

type PresetListCmd struct{}

func (c *PresetListCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	if len(user.ClothTypePresets) == 0 {
		fmt.Println("No presets. Add one with: stitchlog preset add <name> --rate <rate>")
		return nil
	}
	for _, preset := range user.ClothTypePresets {
		rate := "no rate"
		if preset.Rate > 0 {
			rate = formatCurrency(preset.Rate) + "/pc"
		}
		fmt.Printf("%-20s %-12s %s\n", preset.Name, rate, preset.ID)
	}
	return nil
}

type PresetEditCmd struct {
	ID   string   `arg:"" help:"Preset ID to edit."`
	Name string   `help:"New name."`
	Rate *float64 `help:"New per-piece rate."`
}

func (c *PresetEditCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	presets := append([]models.ClothTypePreset{}, user.ClothTypePresets...)
	found := false
	for i := range presets {
		if presets[i].ID != c.ID {
			continue
		}
		found = true
		if name := strings.TrimSpace(c.Name); name != "" {
			presets[i].Name = name
		}
		if c.Rate != nil {
			presets[i].Rate = *c.Rate
		}
	}
	if !found {
		return fmt.Errorf("preset not found: %s", c.ID)
	}

	if err := mgr.UpdateUserPresets(user.ID, presets); err != nil {
		return err
	}
	fmt.Printf("Updated preset %s\n", c.ID)
	return nil
}

type PresetDeleteCmd struct {
	ID string `arg:"" help:"Preset ID to delete."`
}

func (c *PresetDeleteCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	presets := make([]models.ClothTypePreset, 0, len(user.ClothTypePresets))
	for _, preset := range user.ClothTypePresets {
		if preset.ID != c.ID {
			presets = append(presets, preset)
		}
	}
	if len(presets) == len(user.ClothTypePresets) {
		return fmt.Errorf("preset not found: %s", c.ID)
	}

	if err := mgr.UpdateUserPresets(user.ID, presets); err != nil {
		return err
	}
	fmt.Printf("Deleted preset %s\n", c.ID)
	return nil
}
