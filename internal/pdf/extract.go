// Package pdf extracts plain text from PDF documents page by page.
package pdf

import (
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText opens the PDF at path and concatenates the text of every page
// in document order, separated by newlines. A page that yields no extractable
// text contributes nothing; only a document that cannot be opened at all is
// an error.
func ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := reader.NumPage()

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("pdf: failed to extract text from page %d of %d: %v", i, total, err)
			continue
		}
		if text == "" {
			continue
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
