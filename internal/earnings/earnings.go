// Package earnings derives monetary totals from session entries and
// per-piece rates, including progress toward a user's earnings goal.
package earnings

import (
	"strings"

	"github.com/julianstephens/stitchlog/internal/models"
)

// TotalPieces sums every category count across every entry of a session.
func TotalPieces(session models.ClothSession) int {
	total := 0
	for _, entry := range session.Entries {
		for _, count := range entry.Counts {
			total += count
		}
	}
	return total
}

// SessionEarnings is rate × total pieces. Sessions without a positive
// rate contribute nothing.
func SessionEarnings(session models.ClothSession) float64 {
	if session.Rate <= 0 {
		return 0
	}
	return session.Rate * float64(TotalPieces(session))
}

// Progress is a user's accumulated earnings since their anchor, plus the
// capped percentage toward their goal.
type Progress struct {
	Earnings float64
	Percent  float64
}

// GoalProgress computes earnings over the given records, honoring the
// user's earningsStart anchor. With no anchor every session counts. With
// an anchor, only records dated on or after the anchor's date are
// considered, and within them only entries stamped at or after the full
// anchor timestamp.
func GoalProgress(user models.User, records []models.DailyRecord) Progress {
	start := user.EarningsStart

	total := 0.0
	if start == "" {
		for _, record := range records {
			for _, session := range record.Sessions {
				total += SessionEarnings(session)
			}
		}
	} else {
		startDate, _, _ := strings.Cut(start, "T")
		for _, record := range records {
			if record.Date < startDate {
				continue
			}
			for _, session := range record.Sessions {
				filtered := session
				filtered.Entries = nil
				for _, entry := range session.Entries {
					if entry.Timestamp >= start {
						filtered.Entries = append(filtered.Entries, entry)
					}
				}
				total += SessionEarnings(filtered)
			}
		}
	}

	percent := 0.0
	if user.EarningsGoal > 0 {
		percent = total / user.EarningsGoal * 100
		if percent > 100 {
			percent = 100
		}
	}

	return Progress{Earnings: total, Percent: percent}
}
