package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julianstephens/stitchlog/internal/models"
)

func trashedAt(ts string) *string { return &ts }

func testUsers() []models.User {
	return []models.User{
		{
			ID:   "u1",
			Name: "Asha",
			DailyRecords: []models.DailyRecord{
				{ID: "r2", Date: "2025-06-10", Sessions: []models.ClothSession{
					{ID: "s1", ClothType: "Shirt", Rate: 2.5, Entries: []models.Entry{
						{ID: "e1", Timestamp: "2025-06-10T10:00:00.000Z", Counts: map[string]int{"OK": 10, "Rework": 1}},
					}},
					{ID: "s2", ClothType: "Pant", DeletedAt: trashedAt("2025-06-10T11:00:00.000Z"), Entries: []models.Entry{
						{ID: "e2", Timestamp: "2025-06-10T10:30:00.000Z", Counts: map[string]int{"OK": 3}},
					}},
				}},
				{ID: "r1", Date: "2025-06-01", Sessions: []models.ClothSession{
					{ID: "s3", ClothType: "Shirt", Entries: []models.Entry{
						{ID: "e3", Timestamp: "2025-06-01T09:00:00.000Z", Counts: map[string]int{"OK": 7}},
					}},
				}},
			},
		},
		{
			ID:   "u2",
			Name: "Meena",
			DailyRecords: []models.DailyRecord{
				{ID: "r3", Date: "2025-06-05", Sessions: []models.ClothSession{
					{ID: "s4", ClothType: "Saree Fall", Rate: 5, Entries: []models.Entry{
						{ID: "e4", Timestamp: "2025-06-05T14:00:00.000Z", Counts: map[string]int{"OK": 4}},
					}},
				}},
			},
		},
	}
}

func TestDefaultRange(t *testing.T) {
	from, to := DefaultRange(testUsers(), "2025-06-15")
	if from != "2025-06-01" {
		t.Errorf("from = %q, want 2025-06-01", from)
	}
	if to != "2025-06-15" {
		t.Errorf("to = %q, want 2025-06-15", to)
	}
}

func TestDefaultRangeNoRecords(t *testing.T) {
	from, to := DefaultRange([]models.User{{ID: "u1"}}, "2025-06-15")
	if from != "2025-06-15" || to != "2025-06-15" {
		t.Errorf("range = %q..%q, want today..today", from, to)
	}
}

func TestBuildRowsIncludesTrashedSessions(t *testing.T) {
	rows := BuildRows(testUsers(), Filter{StartDate: "2025-06-01", EndDate: "2025-06-30"})

	// s1 contributes two rows (OK, Rework), s2 (trashed) one, s3 one, s4 one.
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}

	found := false
	for _, row := range rows {
		if row.ClothTypeName == "Pant" {
			found = true
		}
	}
	if !found {
		t.Error("trashed session missing from the export")
	}
}

func TestBuildRowsDateFilter(t *testing.T) {
	rows := BuildRows(testUsers(), Filter{StartDate: "2025-06-02", EndDate: "2025-06-09"})
	if len(rows) != 1 || rows[0].UserName != "Meena" {
		t.Errorf("rows = %+v, want only Meena's June 5 entry", rows)
	}
}

func TestBuildRowsUserFilter(t *testing.T) {
	rows := BuildRows(testUsers(), Filter{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
		UserIDs:   map[string]bool{"u2": true},
	})
	for _, row := range rows {
		if row.UserName != "Meena" {
			t.Errorf("unexpected user in rows: %q", row.UserName)
		}
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}

func TestBuildRowsClothTypeFilter(t *testing.T) {
	rows := BuildRows(testUsers(), Filter{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
		ClothType: "shirt",
	})
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for _, row := range rows {
		if row.ClothTypeName != "Shirt" {
			t.Errorf("cloth filter let through %q", row.ClothTypeName)
		}
	}
}

func TestBuildRowsCategoryOrderDeterministic(t *testing.T) {
	rows := BuildRows(testUsers(), Filter{StartDate: "2025-06-10", EndDate: "2025-06-10", ClothType: "Shirt"})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Category != "OK" || rows[1].Category != "Rework" {
		t.Errorf("categories = %q, %q; want sorted OK, Rework", rows[0].Category, rows[1].Category)
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{UserName: "Asha", Date: "2025-06-10", ClothTypeName: "Shirt", EntryTimestamp: "2025-06-10T10:00:00.000Z", Category: "OK", Count: 10, Rate: 2.5},
		{UserName: "Asha", Date: "2025-06-10", ClothTypeName: "Shirt", EntryTimestamp: "2025-06-10T10:00:00.000Z", Category: "Rework", Count: 1},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "user,date,cloth_type,entry_timestamp,category,count,rate" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",OK,10,2.5") {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Zero rate renders as an empty field, not 0.
	if !strings.HasSuffix(lines[2], ",Rework,1,") {
		t.Errorf("row 2 = %q", lines[2])
	}
}
