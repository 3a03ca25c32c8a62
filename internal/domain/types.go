package domain

import "time"

// Mode selects which checklist family an audit target belongs to.
type Mode string

const (
	ModeLocation Mode = "location"
	ModeZone     Mode = "zone"
)

// ParseMode maps a form value to a Mode, defaulting to ModeLocation.
func ParseMode(s string) Mode {
	if Mode(s) == ModeZone {
		return ModeZone
	}
	return ModeLocation
}

// Label is the human-readable name shown in selectors and column headers.
func (m Mode) Label() string {
	if m == ModeZone {
		return "Food Production Zone"
	}
	return "Location"
}

// Details is the audit title page. None of the fields are validated.
type Details struct {
	ClientSite   string
	SiteLocation string
	Position     string
	ConductedOn  string
}

type Session struct {
	ID        string
	Auditor   string
	Details   Details
	CreatedAt time.Time
}

type EntryKind string

const (
	EntryLocationAnswer EntryKind = "location_answer"
	EntryZoneAnswer     EntryKind = "zone_answer"
	EntryPhoto          EntryKind = "photo"
	EntryComment        EntryKind = "comment"
)

// Entry is one recorded answer, photo or comment. Location is the only link
// to the catalog and is compared by exact string.
type Entry struct {
	ID        int64
	SessionID string
	Location  string
	Kind      EntryKind
	Question  string
	Answer    string
	PhotoKey  string
	PhotoMIME string
	Comment   *string
	CreatedAt time.Time
}

// LocationQuestion returns the question text when the entry answers a
// location checklist.
func (e *Entry) LocationQuestion() string {
	if e.Kind == EntryLocationAnswer {
		return e.Question
	}
	return ""
}

// ZoneQuestion returns the question text when the entry answers a food
// production zone checklist.
func (e *Entry) ZoneQuestion() string {
	if e.Kind == EntryZoneAnswer {
		return e.Question
	}
	return ""
}

// CommentText returns the comment, or "" for null comments and non-comment entries.
func (e *Entry) CommentText() string {
	if e.Comment == nil {
		return ""
	}
	return *e.Comment
}
