package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/julianstephens/stitchlog/internal/migration"
	"github.com/julianstephens/stitchlog/internal/storage"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type Context struct {
	Store *storage.Store
	Log   *slog.Logger
}

// OpenManager runs the load-time lifecycle phases in order: load the
// store, migrate legacy data, bootstrap a profile, sweep the trash.
// Commands call this exactly once, so migration and the purge cannot
// run twice in one invocation.
func (ctx *Context) OpenManager() (*tracker.Manager, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}

	if err := migration.New(ctx.Store, ctx.Log).Run(); err != nil {
		return nil, err
	}

	mgr, err := tracker.New(ctx.Store, ctx.Log)
	if err != nil {
		return nil, err
	}
	if err := mgr.Bootstrap(); err != nil {
		return nil, err
	}
	if _, err := mgr.PurgeExpiredTrash(); err != nil {
		return nil, err
	}

	return mgr, nil
}

// parseDate accepts YYYY-MM-DD or the word "today".
func parseDate(s string) (string, error) {
	if s == "today" || s == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

func formatCurrency(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimSuffix(s, ".00")
	return "₹" + s
}
