// Package ingest decodes uploaded checklist files into the typed row
// contract the pricing engine consumes. Column-name guessing lives here and
// only here; the core never sees raw headers.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/headlinebreaks/breakmeter/internal/pricing"
)

var ErrEmptyFile = errors.New("checklist file is empty")

// MissingColumnsError reports every required column the header lacks, so
// the caller can surface the whole list at once.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Required-column detection is fuzzy on purpose: Beckett exports vary
// ("Team", "team name", "Card Description", "card", ...). A column matches
// when any keyword appears as a substring of the normalized header.
var (
	teamKeywords   = []string{"team"}
	playerKeywords = []string{"player", "name"}
	cardKeywords   = []string{"card", "description"}
)

// ParseChecklist decodes a checklist CSV into pricing rows. Headers are
// trimmed and lowercased before detection. Fully-empty rows and rows with a
// blank team cell are dropped, matching the source-tool cleanup.
func ParseChecklist(r io.Reader) ([]pricing.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read checklist csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	teamCol := findColumn(headers, teamKeywords)
	playerCol := findColumn(headers, playerKeywords)
	cardCol := findColumn(headers, cardKeywords)

	var missing []string
	if teamCol < 0 {
		missing = append(missing, "Team")
	}
	if playerCol < 0 {
		missing = append(missing, "Player")
	}
	if cardCol < 0 {
		missing = append(missing, "Card Description")
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	rows := make([]pricing.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := pricing.Row{
			Entity: cell(record, teamCol),
			Player: cell(record, playerCol),
			Card:   cell(record, cardCol),
		}
		if row.Entity == "" && row.Player == "" && row.Card == "" {
			continue
		}
		if row.Entity == "" {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func findColumn(headers []string, keywords []string) int {
	for i, h := range headers {
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
