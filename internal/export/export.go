// Package export serializes collected audit entries into downloadable files.
package export

import (
	"encoding/base64"

	"github.com/vbonduro/aclaudit/internal/domain"
)

// Columns is the header shared by the CSV and XLSX exports.
var Columns = []string{"Location", "Question", "Food Production Zone", "Answer", "Photo", "Comments"}

// Row is one exported entry. Fields that do not apply to the entry are empty.
type Row struct {
	Location string
	Question string
	Zone     string
	Answer   string
	Photo    string
	Comments string
}

func (r Row) values() []string {
	return []string{r.Location, r.Question, r.Zone, r.Answer, r.Photo, r.Comments}
}

// NewRow flattens an entry. photo is the raw image for photo entries and is
// base64-encoded into the Photo column.
func NewRow(e *domain.Entry, photo []byte) Row {
	row := Row{
		Location: e.Location,
		Question: e.LocationQuestion(),
		Zone:     e.ZoneQuestion(),
		Answer:   e.Answer,
		Comments: e.CommentText(),
	}
	if e.Kind == domain.EntryPhoto {
		row.Photo = base64.StdEncoding.EncodeToString(photo)
	}
	return row
}

// DetailRow is a label/value pair on the audit details sheet.
type DetailRow struct {
	Label string
	Value string
}
