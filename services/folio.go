package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// FormatFolio constructs a quote folio string from its components.
// Format: SQ-{yy}-{sequence}, e.g. "SQ-26-0042".
func FormatFolio(year, sequence int) string {
	return fmt.Sprintf("SQ-%02d-%04d", year%100, sequence)
}

// GenerateFolio creates the next quote folio for the calendar year of
// now. The sequence restarts at 1 each year.
func GenerateFolio(app *pocketbase.PocketBase, now time.Time) (string, error) {
	prefix := fmt.Sprintf("SQ-%02d-", now.Year()%100)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"folio ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection missing or no records yet; start at 1.
		existing = nil
	}

	return FormatFolio(now.Year(), len(existing)+1), nil
}
