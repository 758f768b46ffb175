package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
)

// MigrateQuoteFolios finds quote records created before folio numbering
// existed and stamps each one with a folio in creation order. Safe to
// call on every startup -- returns early if nothing to migrate.
func MigrateQuoteFolios(app *pocketbase.PocketBase) error {
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("migrate: could not find quotes collection: %w", err)
	}

	unstamped, err := app.FindRecordsByFilter(
		quotesCol,
		"folio = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotes without folio: %w", err)
	}

	if len(unstamped) == 0 {
		return nil
	}

	log.Printf("migrate: found %d quote(s) without a folio -- stamping...\n", len(unstamped))

	// Per-year sequence counters, starting above any folio already taken.
	taken := make(map[int]int)
	for _, q := range unstamped {
		created := q.GetDateTime("created").Time()
		if created.IsZero() {
			created = time.Now()
		}
		year := created.Year()

		if _, ok := taken[year]; !ok {
			prefix := fmt.Sprintf("SQ-%02d-", year%100)
			stamped, err := app.FindRecordsByFilter(
				quotesCol,
				"folio ~ {:prefix}",
				"",
				0,
				0,
				map[string]any{"prefix": prefix + "%"},
			)
			if err != nil {
				stamped = nil
			}
			taken[year] = len(stamped)
		}

		taken[year]++
		folio := fmt.Sprintf("SQ-%02d-%04d", year%100, taken[year])

		q.Set("folio", folio)
		if err := app.Save(q); err != nil {
			log.Printf("migrate: failed to stamp quote %s with folio %s: %v\n", q.Id, folio, err)
			continue
		}
	}

	log.Println("migrate: quote folio migration complete.")
	return nil
}
