// Package report renders the pet inventory as a CSV export.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
)

const (
	Filename    = "pets-report.csv"
	ContentType = "text/csv"
)

// ErrEmptyDataset is returned when there are no records to export.
var ErrEmptyDataset = errors.New("no pet records to export")

var header = []string{"Pet Type", "Breed", "Age", "Weight", "Gender", "Price", "Status", "Medical History"}

// Report is a generated export ready for delivery.
type Report struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// Generate renders every record, in order, under a fixed header. Fields are
// CSV-quoted when they contain commas, quotes or newlines.
func Generate(records []api.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return nil, fmt.Errorf("failed to write report row %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}

	return &Report{
		Filename:    Filename,
		ContentType: ContentType,
		Content:     buf.Bytes(),
		Rows:        len(records),
	}, nil
}

func row(r api.Record) []string {
	medical := r.MedicalHistory
	if medical == "" {
		medical = "None"
	}
	return []string{
		r.Type,
		r.Breed,
		number(r.Age),
		number(r.Weight) + " kg",
		r.Gender,
		"Rs. " + number(r.Price),
		r.Status,
		medical,
	}
}

// number renders v in its shortest form: 2, 12.5, 5000.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
