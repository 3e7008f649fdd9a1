package receipt

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Sink defines the interface for writing the full set of records
type Sink interface {
	Write(records []*Record) error
}

// JSONSink writes records to a JSON file
type JSONSink struct {
	path string
}

// NewJSONSink creates a new JSONSink
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Write replaces the JSON file with all records
func (s *JSONSink) Write(records []*Record) error {
	return writeRecordsJSON(s.path, records)
}

// CSVSink writes records to a space delimited CSV file
type CSVSink struct {
	path string
}

// NewCSVSink creates a new CSVSink
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Write replaces the CSV file with all records
func (s *CSVSink) Write(records []*Record) error {
	payload, err := encodeRecordsCSV(records)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, payload)
}

// encodeRecordsCSV lays out one block per record: a row with the file name
// preceded by a blank line, optional location and store rows, then the items.
func encodeRecordsCSV(records []*Record) ([]byte, error) {
	rows := [][]string{{"Item", "Price"}}
	for _, record := range records {
		rows = append(rows, []string{"\n" + record.FileName})
		if record.StoreLocation != nil {
			rows = append(rows, []string{*record.StoreLocation})
		}
		if record.StoreName != nil {
			rows = append(rows, []string{*record.StoreName})
		}
		for _, item := range record.Groceries {
			rows = append(rows, []string{item.Name, item.Price})
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ' '
	for _, row := range rows {
		// csv.Writer renders a lone empty field as a blank line, which
		// readers skip; quote it so an empty store field keeps its row
		if len(row) == 1 && row[0] == "" {
			w.Flush()
			buf.WriteString("\"\"\n")
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}
