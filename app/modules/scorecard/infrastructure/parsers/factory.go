package parsers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Factory picks a parser from the file extension.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns a parser for the given file name.
func (f *Factory) GetParser(fileName string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	}
	return nil, fmt.Errorf("%w: %s (must be .csv or .xlsx)", ErrUnsupportedFile, fileName)
}
