// Package export flattens work records into a row-per-(entry ×
// category) table for reporting. Rendering the table (CSV today, the
// visual report pipeline elsewhere) is downstream of this package.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/stitchlog/internal/models"
)

// Row is one exported line: a single category count of a single entry.
type Row struct {
	UserName       string
	Date           string
	ClothTypeName  string
	EntryTimestamp string
	Category       string
	Count          int
	Rate           float64
}

// Filter selects which rows to export. Empty UserIDs means every user;
// ClothType is a case-insensitive substring match on the session name.
type Filter struct {
	StartDate string // YYYY-MM-DD inclusive
	EndDate   string // YYYY-MM-DD inclusive
	UserIDs   map[string]bool
	ClothType string
}

// DefaultRange spans from the oldest record across the given users to
// today. Records are sorted newest first, so the oldest is the last.
func DefaultRange(users []models.User, today string) (string, string) {
	oldest := today
	for _, user := range users {
		if n := len(user.DailyRecords); n > 0 {
			if d := user.DailyRecords[n-1].Date; d < oldest {
				oldest = d
			}
		}
	}
	return oldest, today
}

// BuildRows flattens the selected users' records. Category keys within
// an entry are emitted in sorted order so output is deterministic.
func BuildRows(users []models.User, filter Filter) []Row {
	nameFilter := strings.ToLower(strings.TrimSpace(filter.ClothType))

	var rows []Row
	for _, user := range users {
		if len(filter.UserIDs) > 0 && !filter.UserIDs[user.ID] {
			continue
		}
		for _, record := range user.DailyRecords {
			if record.Date < filter.StartDate || record.Date > filter.EndDate {
				continue
			}
			for _, session := range record.Sessions {
				if nameFilter != "" && !strings.Contains(strings.ToLower(session.ClothType), nameFilter) {
					continue
				}
				for _, entry := range session.Entries {
					categories := make([]string, 0, len(entry.Counts))
					for category := range entry.Counts {
						categories = append(categories, category)
					}
					sort.Strings(categories)
					for _, category := range categories {
						rows = append(rows, Row{
							UserName:       user.Name,
							Date:           record.Date,
							ClothTypeName:  session.ClothType,
							EntryTimestamp: entry.Timestamp,
							Category:       category,
							Count:          entry.Counts[category],
							Rate:           session.Rate,
						})
					}
				}
			}
		}
	}
	return rows
}

// WriteCSV renders rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := []string{"user", "date", "cloth_type", "entry_timestamp", "category", "count", "rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		rate := ""
		if row.Rate > 0 {
			rate = strconv.FormatFloat(row.Rate, 'f', -1, 64)
		}
		fields := []string{
			row.UserName,
			row.Date,
			row.ClothTypeName,
			row.EntryTimestamp,
			row.Category,
			strconv.Itoa(row.Count),
			rate,
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
