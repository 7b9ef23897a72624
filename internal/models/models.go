package models

// Language is a supported locale code for display strings.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHinglish Language = "hi"
	LanguageHindi    Language = "hn"
)

// Entry is one numpad submission: a batch of per-category piece counts.
// Entries are immutable once created.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"` // RFC3339
	Counts    map[string]int `json:"counts"`
}

// ClothSession is one unit of work on one cloth-type/rate combination
// within a day. A non-nil DeletedAt marks the session as trashed.
type ClothSession struct {
	ID               string   `json:"id"`
	ClothType        string   `json:"clothType"`
	Entries          []Entry  `json:"entries"` // newest first
	CustomCategories []string `json:"customCategories"`
	Rate             float64  `json:"rate,omitempty"`
	DeletedAt        *string  `json:"deletedAt,omitempty"` // RFC3339 timestamp
}

// Trashed reports whether the session is soft-deleted.
func (s ClothSession) Trashed() bool {
	return s.DeletedAt != nil
}

// DailyRecord holds the sessions worked on one calendar day. A user may
// have several records for the same date; identity is the ID, which is
// time-prefixed so it sorts by creation order within a date.
type DailyRecord struct {
	ID       string         `json:"id"`
	Date     string         `json:"date"` // YYYY-MM-DD
	Sessions []ClothSession `json:"sessions"`
}

// ClothTypePreset is a named per-piece rate template, managed per user.
type ClothTypePreset struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate,omitempty"`
}

// User is one work profile. DailyRecords is kept sorted descending by
// (date, id) after every mutation.
type User struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	ClothTypePresets []ClothTypePreset `json:"clothTypePresets"`
	DailyRecords     []DailyRecord     `json:"dailyRecords"`
	ActiveRecordID   *string           `json:"activeRecordId"`
	EarningsGoal     float64           `json:"earningsGoal,omitempty"`
	EarningsStart    string            `json:"earningsStart,omitempty"` // RFC3339, empty means unset
	Language         Language          `json:"language"`
}

// AppData is the primary persisted state: every profile plus the pointer
// to the one currently active.
type AppData struct {
	Users        []User  `json:"users"`
	ActiveUserID *string `json:"activeUserId"`
}

// SessionToDelete addresses one session within one record for the batch
// archive/restore/delete operations. It is never persisted.
type SessionToDelete struct {
	RecordID  string
	SessionID string
}
