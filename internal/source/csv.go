package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/validator"
)

// CSVLoader reads delimited files into validated datasets.
// Cells stay strings; the field resolver coerces them later.
type CSVLoader struct {
	Comma rune // 0 means ','
}

// LoadFile reads path as a dataset of domain. The dataset id is the file name
// without extension.
func (l CSVLoader) LoadFile(path string, domain contracts.Domain) (*contracts.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := l.Load(f, id, domain)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

// Load reads CSV from r. The first record is the header; blank header cells
// are named column_N. Short rows are padded, long rows truncated.
func (l CSVLoader) Load(r io.Reader, id string, domain contracts.Domain) (*contracts.Dataset, error) {
	cr := csv.NewReader(r)
	if l.Comma != 0 {
		cr.Comma = l.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	ds := &contracts.Dataset{ID: id, Domain: domain, Rows: []contracts.Record{}}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		validator.Apply(ds)
		return ds, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		header[i] = h
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(ds.Rows)+2, err)
		}
		if blank(rec) {
			continue
		}
		row := make(contracts.Record, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	validator.Apply(ds)
	return ds, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
