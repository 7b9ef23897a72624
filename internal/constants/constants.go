package constants

import "time"

const (
	// DefaultUserName is the placeholder profile name used for the
	// bootstrap user and for profiles synthesized during migration.
	// The setup flow replaces it with the user's real name.
	DefaultUserName = "My Work"

	// TrashRetention is how long an archived session stays in the trash
	// before the load-time sweep hard-deletes it.
	TrashRetention = 7 * 24 * time.Hour

	// ChatExpiry is how long a persisted insights transcript stays
	// valid. Older transcripts are discarded on load.
	ChatExpiry = time.Hour

	// ArchiveConfirmLiteral must be typed exactly to confirm a batch
	// archive. Case-sensitive.
	ArchiveConfirmLiteral = "ARCHIVE"

	// SnapshotDays caps how many recent records are serialized into the
	// insights prompt.
	SnapshotDays = 30

	// MaxEntryDigits caps numpad input length.
	MaxEntryDigits = 5
)

// DefaultCategories is the fixed category set every session starts with.
// Sessions may add custom categories on top.
var DefaultCategories = []string{"OK", "Rework", "Oil", "Adas", "Yarn", "2nd OK"}
