package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSVParser reads comma separated scorecards.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	reader := csv.NewReader(bytes.NewReader(fileData))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		rows = append(rows, record)
	}

	return parseRows(rows, fileName)
}
