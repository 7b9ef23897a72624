package insights

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/earnings"
	"github.com/julianstephens/stitchlog/internal/models"
)

type sessionSummary struct {
	ClothType      string         `json:"clothType"`
	Rate           float64        `json:"rate,omitempty"`
	TotalPieces    int            `json:"totalPieces"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

type recordSummary struct {
	Date     string           `json:"date"`
	Sessions []sessionSummary `json:"sessions"`
}

type dataContext struct {
	UserName     string          `json:"userName"`
	EarningsGoal float64         `json:"earningsGoal"`
	Records      []recordSummary `json:"records"`
}

// Snapshot serializes the most recent records into the compact JSON the
// prompt embeds: per session, only cloth type, rate, total pieces, and
// summed per-category counts.
func Snapshot(user models.User, visibleRecords []models.DailyRecord) (string, error) {
	records := visibleRecords
	if len(records) > constants.SnapshotDays {
		records = records[:constants.SnapshotDays]
	}

	summaries := make([]recordSummary, 0, len(records))
	for _, record := range records {
		sessions := make([]sessionSummary, 0, len(record.Sessions))
		for _, session := range record.Sessions {
			counts := make(map[string]int)
			for _, entry := range session.Entries {
				for category, count := range entry.Counts {
					counts[category] += count
				}
			}
			sessions = append(sessions, sessionSummary{
				ClothType:      session.ClothType,
				Rate:           session.Rate,
				TotalPieces:    earnings.TotalPieces(session),
				CategoryCounts: counts,
			})
		}
		summaries = append(summaries, recordSummary{Date: record.Date, Sessions: sessions})
	}

	raw, err := json.MarshalIndent(dataContext{
		UserName:     user.Name,
		EarningsGoal: user.EarningsGoal,
		Records:      summaries,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return string(raw), nil
}
