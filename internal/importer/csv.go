package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// record is one CSV row keyed by its header.
type record map[string]string

// readRecords reads a headed CSV. Columns are matched by name, so their order is free.
func readRecords(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []record
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}

		row := make(record, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r record) str(key string) string {
	return r[key]
}

func (r record) id(key string) (uint, error) {
	v := strings.TrimSpace(r[key])
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not an id", key, v)
	}
	return uint(n), nil
}

// optUint returns nil for an empty cell.
func (r record) optID(key string) (*uint, error) {
	if strings.TrimSpace(r[key]) == "" {
		return nil, nil
	}
	n, err := r.id(key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r record) integer(key string) (int, error) {
	v := strings.TrimSpace(r[key])
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("column %q: %q is not an integer", key, v)
	}
	return n, nil
}

// timestamp parses RFC 3339 timestamps; an empty cell yields the zero time.
func (r record) timestamp(key string) (time.Time, error) {
	v := strings.TrimSpace(r[key])
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", key, err)
	}
	return t.UTC(), nil
}
