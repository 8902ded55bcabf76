// Package search filters cached pet records by free text.
package search

import (
	"strings"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
)

// Filter returns the records whose type, breed, status or description
// contains query, ignoring case. Order is preserved and an empty query
// matches everything. records is never modified.
func Filter(query string, records []api.Record) []api.Record {
	q := strings.ToLower(query)
	out := make([]api.Record, 0, len(records))
	for _, r := range records {
		if q == "" || matches(q, r) {
			out = append(out, r)
		}
	}
	return out
}

func matches(q string, r api.Record) bool {
	for _, field := range []string{r.Type, r.Breed, r.Status, r.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
