// Package artifacts reads the flat text files the ingestion job writes
// alongside the database: lastupdate.txt and billcounter.txt.
package artifacts

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nzpt/internal/models"
)

// ErrMalformedCounter is returned when billcounter.txt is not "<count>, <YYYY-MM-DD>".
var ErrMalformedCounter = errors.New("malformed bill counter")

// Files reads artifacts from fixed paths. Each call re-reads the file so a
// fresh ingestion run is picked up without a restart.
type Files struct {
	LastUpdatePath  string
	BillCounterPath string
}

// NewFiles creates a reader for the given artifact paths.
func NewFiles(lastUpdatePath, billCounterPath string) *Files {
	return &Files{LastUpdatePath: lastUpdatePath, BillCounterPath: billCounterPath}
}

// LastUpdated returns the "last updated" timestamp exactly as written, trimmed.
func (f *Files) LastUpdated() (string, error) {
	data, err := os.ReadFile(f.LastUpdatePath)
	if err != nil {
		return "", fmt.Errorf("read last update: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BillCounter returns the running total of bills considered this term.
func (f *Files) BillCounter() (models.BillCounter, error) {
	data, err := os.ReadFile(f.BillCounterPath)
	if err != nil {
		return models.BillCounter{}, fmt.Errorf("read bill counter: %w", err)
	}
	return ParseBillCounter(string(data))
}

// ParseBillCounter parses a line such as "212, 2025-12-24".
func ParseBillCounter(line string) (models.BillCounter, error) {
	countPart, datePart, ok := strings.Cut(strings.TrimSpace(line), ",")
	if !ok {
		return models.BillCounter{}, fmt.Errorf("%w: %q", ErrMalformedCounter, line)
	}

	total, err := strconv.ParseInt(strings.TrimSpace(countPart), 10, 64)
	if err != nil || total < 0 {
		return models.BillCounter{}, fmt.Errorf("%w: bad count %q", ErrMalformedCounter, countPart)
	}

	asOf, err := time.Parse("2006-01-02", strings.TrimSpace(datePart))
	if err != nil {
		return models.BillCounter{}, fmt.Errorf("%w: bad date %q", ErrMalformedCounter, datePart)
	}

	return models.BillCounter{Total: total, AsOf: asOf}, nil
}
