package export

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
)

// DocxContentType is the MIME type of the comments document.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WriteCommentsDocument writes a Word document with a level-one heading
// followed by one paragraph per comment. Empty comments yield empty paragraphs.
func WriteCommentsDocument(w io.Writer, heading string, comments []string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	if _, err := doc.AddHeading(heading, 1); err != nil {
		return fmt.Errorf("failed to add heading: %w", err)
	}
	for _, c := range comments {
		doc.AddParagraph(c)
	}
	if err := doc.Write(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
