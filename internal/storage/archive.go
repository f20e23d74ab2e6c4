package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// absent marks an optional field a bookmaker did not quote. Archived
// files round-trip through the same record shape the feed produces.
const absent = "N/A"

var archiveHeader = []string{
	"sport", "home_team", "away_team", "bookmaker", "start_time",
	"home_odds", "away_odds", "draw_odds",
	"home_spread", "home_spread_odds", "away_spread", "away_spread_odds",
	"total_line", "over_odds", "under_odds",
}

// Archiver writes raw quote snapshots as timestamped CSV files so a
// batch can be replayed later. A nil Archiver (empty dir) archives
// nothing.
type Archiver struct {
	dir    string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing into dir, creating it if
// needed. An empty dir disables archiving and returns nil.
func NewArchiver(dir string, logger *zap.Logger) (*Archiver, error) {
	if dir == "" {
		return nil, nil
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	logger.Info("quote-archive-enabled", zap.String("dir", dir))

	return &Archiver{
		dir:    dir,
		logger: logger,
	}, nil
}

// Archive writes one snapshot file named after the batch time and
// returns its path.
func (a *Archiver) Archive(now time.Time, records []types.RawRecord) (string, error) {
	if a == nil {
		return "", nil
	}

	path := filepath.Join(a.dir, fmt.Sprintf("quotes-%s.csv", now.UTC().Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	err = w.Write(archiveHeader)
	if err != nil {
		return "", fmt.Errorf("write archive header: %w", err)
	}

	for i := range records {
		err = w.Write(archiveRow(&records[i]))
		if err != nil {
			return "", fmt.Errorf("write archive row: %w", err)
		}
	}

	w.Flush()
	err = w.Error()
	if err != nil {
		return "", fmt.Errorf("flush archive: %w", err)
	}

	a.logger.Debug("quotes-archived",
		zap.String("path", path),
		zap.Int("records", len(records)))

	return path, nil
}

func archiveRow(rec *types.RawRecord) []string {
	return []string{
		rec.Sport,
		rec.HomeTeam,
		rec.AwayTeam,
		rec.Bookmaker,
		rec.StartTime,
		optional(rec.HomeOdds),
		optional(rec.AwayOdds),
		optional(rec.DrawOdds),
		optional(rec.HomeSpread),
		optional(rec.HomeSpreadOdds),
		optional(rec.AwaySpread),
		optional(rec.AwaySpreadOdds),
		optional(rec.TotalLine),
		optional(rec.OverOdds),
		optional(rec.UnderOdds),
	}
}

func optional(v *float64) string {
	if v == nil {
		return absent
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}
