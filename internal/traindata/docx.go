// Package traindata converts tables from Word documents into chat-style
// fine-tuning examples written as line-delimited JSON. It is a standalone
// batch utility and shares no state with the ingestion pipeline.
package traindata

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/unidoc/unioffice/v2/document"
)

// DefaultTag labels examples when no tag is given on the command line.
const DefaultTag = "DEFICIENCY"

// Observation rows carry the written text in the first cell and image
// placement info in the second. Rows whose second cell is non-empty have no
// usable picture and are skipped.
type TableRow struct {
	Text      string
	ImageInfo string
}

// Message is one turn of a chat-style fine-tuning example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Example is one line of the output JSONL file.
type Example struct {
	Messages []Message `json:"messages"`
}

const userPromptTemplate = "Write an engineering observation for the following image: {img}\nTag: %s\nDescription: {description}."

// buildExamples filters table rows and turns each usable one into a
// user/assistant message pair. The row text becomes the assistant answer.
func buildExamples(rows []TableRow, tag string) []Example {
	examples := make([]Example, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Text) == "" || strings.TrimSpace(row.ImageInfo) != "" {
			continue
		}
		examples = append(examples, Example{
			Messages: []Message{
				{Role: "user", Content: fmt.Sprintf(userPromptTemplate, tag)},
				{Role: "assistant", Content: row.Text},
			},
		})
	}
	return examples
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, examples []Example) error {
	enc := json.NewEncoder(w)
	for _, example := range examples {
		if err := enc.Encode(example); err != nil {
			return fmt.Errorf("failed to encode training example: %w", err)
		}
	}
	return nil
}

// Convert reads every table in a Word document and writes the extracted
// fine-tuning examples to outputPath. Returns the number of examples written.
func Convert(inputPath, outputPath, tag string) (int, error) {
	if tag == "" {
		tag = DefaultTag
	}

	rows, err := readTableRows(inputPath)
	if err != nil {
		return 0, err
	}

	examples := buildExamples(rows, tag)

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := WriteJSONL(out, examples); err != nil {
		return 0, err
	}

	log.Printf("saved %d training examples to %s", len(examples), outputPath)
	return len(examples), nil
}

func readTableRows(path string) ([]TableRow, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer doc.Close()

	var rows []TableRow
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			cells := row.Cells()
			if len(cells) < 2 {
				continue
			}
			rows = append(rows, TableRow{
				Text:      cellText(cells[0]),
				ImageInfo: cellText(cells[1]),
			})
		}
	}
	return rows, nil
}

func cellText(cell document.Cell) string {
	var parts []string
	for _, para := range cell.Paragraphs() {
		var sb strings.Builder
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		if sb.Len() > 0 {
			parts = append(parts, sb.String())
		}
	}
	return strings.Join(parts, "\n")
}
