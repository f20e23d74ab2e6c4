package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/oddsline/oddsline/pkg/types"
)

// ReadArchive loads a quote snapshot written by Archive. Column order
// is fixed; absent optionals come back nil.
func ReadArchive(path string) ([]types.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("archive %s is empty", path)
	}
	if len(rows[0]) != len(archiveHeader) {
		return nil, fmt.Errorf("archive %s: expected %d columns, got %d", path, len(archiveHeader), len(rows[0]))
	}

	records := make([]types.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("archive %s row %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string) (types.RawRecord, error) {
	rec := types.RawRecord{
		Sport:     row[0],
		HomeTeam:  row[1],
		AwayTeam:  row[2],
		Bookmaker: row[3],
		StartTime: row[4],
	}

	fields := []**float64{
		&rec.HomeOdds, &rec.AwayOdds, &rec.DrawOdds,
		&rec.HomeSpread, &rec.HomeSpreadOdds, &rec.AwaySpread, &rec.AwaySpreadOdds,
		&rec.TotalLine, &rec.OverOdds, &rec.UnderOdds,
	}

	for i, field := range fields {
		raw := row[5+i]
		if raw == absent || raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, fmt.Errorf("parse column %s: %w", archiveHeader[5+i], err)
		}
		*field = &v
	}

	return rec, nil
}
