// internal/ingest/normalize.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/magazyn-app/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Row is one canonical record: canonical field name -> raw string value.
type Row map[string]string

// Result is the output of normalizing one uploaded CSV file.
type Result struct {
	Kind    FileKind
	Headers []string // trimmed, lower-cased source headers, in file order
	Rows    []Row    // canonical rows, preserving input row order
}

// Normalize reads a CSV export, detects whether it is a stock snapshot or a
// sales batch, maps its locale-specific headers to canonical field names and
// validates that the required columns are present. Kind detection happens on
// the normalized header row before any renaming. A *domain.SchemaError is
// returned when the file shape is unusable; nothing is persisted in that case.
func Normalize(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &domain.SchemaError{Reason: fmt.Sprintf("unreadable CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, &domain.SchemaError{Reason: "empty file"}
	}

	rawHeaders := records[0]
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	kind := detectKind(rawHeaders)
	log.Debug().Strs("headers", headers).Str("kind", string(kind)).Msg("classified upload")

	fields, err := mapColumns(rawHeaders, headers, kind)
	if err != nil {
		return nil, err
	}

	if err := validateRequired(fields, headers, kind); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(fields))
		for idx, name := range fields {
			if idx < len(rec) {
				row[name] = rec[idx]
			}
		}
		rows = append(rows, row)
	}

	return &Result{Kind: kind, Headers: headers, Rows: rows}, nil
}

// detectKind classifies the file from its header row: any stock-quantity
// token means a stock snapshot, everything else is treated as sales.
func detectKind(rawHeaders []string) FileKind {
	for _, h := range rawHeaders {
		if stockTokens[foldHeader(h)] {
			return KindStock
		}
	}

	return KindSales
}

// mapColumns builds a column index -> canonical field name mapping. For sales
// files without an exact quantity header, all headers are searched for a
// quantity-synonym token (diacritic-normalized, substring match).
func mapColumns(rawHeaders, headers []string, kind FileKind) (map[int]string, error) {
	fields := make(map[int]string, len(rawHeaders))
	for idx, h := range rawHeaders {
		if name, ok := canonicalField(h); ok {
			fields[idx] = name
		}
	}

	if kind != KindSales {
		return fields, nil
	}

	for _, name := range fields {
		if name == FieldQuantity {
			return fields, nil
		}
	}

	for idx, h := range rawHeaders {
		folded := foldHeader(h)
		for _, token := range quantityTokens {
			if strings.Contains(folded, token) {
				fields[idx] = FieldQuantity
				return fields, nil
			}
		}
	}

	return nil, &domain.SchemaError{
		Reason:           "quantity column not found",
		AvailableHeaders: headers,
	}
}

func validateRequired(fields map[int]string, headers []string, kind FileKind) error {
	required := []string{FieldSKU, FieldQuantity}
	if kind == KindStock {
		required = []string{FieldSKU, FieldOnHand}
	}

	present := make(map[string]bool, len(fields))
	for _, name := range fields {
		present[name] = true
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &domain.SchemaError{MissingFields: missing, AvailableHeaders: headers}
	}

	return nil
}
