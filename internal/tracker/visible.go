package tracker

import "github.com/julianstephens/stitchlog/internal/models"

// VisibleRecords projects records for display: trashed sessions are
// filtered out of each record's session list, but a record is never
// dropped even when the filter leaves it empty. Today's fresh record
// must stay selectable so the UI has something to attach sessions to.
func VisibleRecords(records []models.DailyRecord) []models.DailyRecord {
	visible := make([]models.DailyRecord, 0, len(records))
	for _, record := range records {
		sessions := make([]models.ClothSession, 0, len(record.Sessions))
		for _, session := range record.Sessions {
			if !session.Trashed() {
				sessions = append(sessions, session)
			}
		}
		record.Sessions = sessions
		visible = append(visible, record)
	}
	return visible
}

// TrashItem locates one trashed session for display and batch actions.
type TrashItem struct {
	RecordID  string
	Date      string
	Session   models.ClothSession
}

// TrashItems lists every trashed session of a user, in record order.
func TrashItems(user models.User) []TrashItem {
	var items []TrashItem
	for _, record := range user.DailyRecords {
		for _, session := range record.Sessions {
			if session.Trashed() {
				items = append(items, TrashItem{
					RecordID: record.ID,
					Date:     record.Date,
					Session:  session,
				})
			}
		}
	}
	return items
}
