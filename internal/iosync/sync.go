package iosync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/geonym/srsdb/pkg/catalog"
	"github.com/geonym/srsdb/pkg/proj"
)

// Sync reconciles the overlay tier against a current definition
// source. Only rows that carry a baseline authority (an EPSG code)
// are candidates; purely user-defined rows have no external
// definition to reconcile against.
//
// Returns the number of rows updated. When some rows fail while
// others succeed, the returned count is negative: minus the number of
// failed rows, matching the documented partial-failure convention.
// This is a maintenance operation, not part of the steady-state
// resolution path.
func Sync(
	ctx context.Context,
	store *catalog.Store,
	source DefinitionSource,
	withProgress bool,
) (int, error) {
	var rows []catalog.Record
	err := store.Overlay().Each(ctx, func(rec catalog.Record) error {
		if rec.AuthName != "" && rec.EpsgID > 0 {
			rows = append(rows, rec)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		slog.Info("sync: no authority-backed user records to reconcile")
		return 0, nil
	}

	var bar progress
	if withProgress {
		bar = newProgressBar(len(rows), "sync ")
	} else {
		bar = noProgress{}
	}
	defer bar.Finish()

	var updated, failed int
	for _, rec := range rows {
		bar.Increment()

		current, err := source.Proj4ForEpsg(ctx, rec.EpsgID)
		if errors.Is(err, ErrNoDefinition) {
			continue
		}
		if err != nil {
			slog.Error("sync: cannot fetch definition",
				"srs_id", rec.SrsID, "epsg", rec.EpsgID, "error", err)
			failed++
			continue
		}

		normalized := proj.Normalize(current)
		if normalized == rec.Proj4 {
			continue
		}

		err = store.Overlay().UpdateProj4(ctx, rec.SrsID, normalized)
		if err != nil {
			slog.Error("sync: cannot update record",
				"srs_id", rec.SrsID, "error", err)
			failed++
			continue
		}
		updated++
	}

	slog.Info("sync complete",
		"checked", humanize.Comma(int64(len(rows))),
		"updated", humanize.Comma(int64(updated)),
		"failed", humanize.Comma(int64(failed)),
	)

	if failed > 0 {
		return -failed, nil
	}
	return updated, nil
}
