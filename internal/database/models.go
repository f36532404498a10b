package database

import "time"

// RevisionKind classifies a school-calendar revision.
type RevisionKind string

const (
	// KindNoSchool marks a date as a non-instruction day (snow day,
	// added staff development day).
	KindNoSchool RevisionKind = "no_school"
	// KindMinimum marks a date as an early-dismissal day.
	KindMinimum RevisionKind = "minimum"
	// KindInstruction reinstates a date as a regular school day,
	// overriding a published non-instruction day.
	KindInstruction RevisionKind = "instruction"
)

// ValidRevisionKinds returns all valid revision kinds.
func ValidRevisionKinds() []RevisionKind {
	return []RevisionKind{KindNoSchool, KindMinimum, KindInstruction}
}

// IsValid checks if a revision kind is valid.
func (k RevisionKind) IsValid() bool {
	for _, valid := range ValidRevisionKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// Revision is a single district change to the published school calendar.
type Revision struct {
	ID        int64        `json:"id"`
	Date      string       `json:"date"` // ISO 8601: YYYY-MM-DD
	Kind      RevisionKind `json:"kind"`
	Label     string       `json:"label"`
	CreatedAt time.Time    `json:"created_at"`
}
