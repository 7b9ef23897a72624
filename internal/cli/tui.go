package cli

import "github.com/julianstephens/stitchlog/internal/tui"

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}
	return tui.Run(mgr, ctx.Store)
}
