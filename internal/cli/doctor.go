package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/stitchlog/internal/tracker"
)

// DoctorCmd checks the store for internal inconsistencies and reports
// them without fixing anything.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	fmt.Printf("Store: %s\n", ctx.Store.GetConfigPath())

	problems := 0
	for _, user := range mgr.Users() {
		records := user.DailyRecords
		trashed := len(tracker.TrashItems(user))
		fmt.Printf("Profile %q: %d day(s), %d trashed session(s)\n", user.Name, len(records), trashed)

		if user.ActiveRecordID != nil {
			found := false
			for _, r := range records {
				if r.ID == *user.ActiveRecordID {
					found = true
					break
				}
			}
			if !found {
				problems++
				fmt.Printf("  WARN: active record pointer %s is dangling\n", *user.ActiveRecordID)
			}
		}

		for i := 1; i < len(records); i++ {
			prev, cur := records[i-1], records[i]
			if cur.Date > prev.Date || (cur.Date == prev.Date && cur.ID > prev.ID) {
				problems++
				fmt.Printf("  WARN: records out of order at %s\n", cur.ID)
				break
			}
		}

		for _, record := range records {
			for _, session := range record.Sessions {
				if session.DeletedAt != nil {
					if _, err := time.Parse(time.RFC3339, *session.DeletedAt); err != nil {
						problems++
						fmt.Printf("  WARN: session %s has unparsable deletedAt %q\n", session.ID, *session.DeletedAt)
					}
				}
				for _, entry := range session.Entries {
					for category, count := range entry.Counts {
						if count <= 0 {
							problems++
							fmt.Printf("  WARN: entry %s has non-positive count for %q\n", entry.ID, category)
						}
					}
				}
			}
		}
	}

	if problems == 0 {
		fmt.Println("No problems found")
		return nil
	}
	return fmt.Errorf("found %d problem(s)", problems)
}
