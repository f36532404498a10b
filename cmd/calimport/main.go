// Command calimport loads school-calendar revisions from a CSV file into the
// SQLite database.
//
// Usage:
//
//	go run ./cmd/calimport -csv data/revisions.csv -db data/schedule.db
//
// The CSV has a header row and three columns: date (YYYY-MM-DD), kind
// (no_school, minimum, instruction), and a free-text label. Rows are
// upserted, so running the import twice is safe; a row with the same date
// and kind replaces the stored label.
//
// Revisions are read by the API server at startup. After importing, restart
// the server to pick them up.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kaykas/alexandra-schedule/internal/custody"
	"github.com/kaykas/alexandra-schedule/internal/database"
)

func main() {
	csvPath := flag.String("csv", "data/revisions.csv", "Path to revisions CSV file")
	dbPath := flag.String("db", "data/schedule.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*csvPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(csvPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse CSV
	// =========================================================================
	logger.Info("reading CSV file", slog.String("path", csvPath))

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	revisions, err := parseRevisions(f)
	if err != nil {
		return fmt.Errorf("parse CSV: %w", err)
	}

	logger.Info("parsed CSV", slog.Int("revisions", len(revisions)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Upsert revisions
	// =========================================================================
	for i, rev := range revisions {
		if _, err := db.UpsertRevision(ctx, rev.Date, rev.Kind, rev.Label); err != nil {
			return fmt.Errorf("upsert revision %d (%s/%s): %w", i+1, rev.Date, rev.Kind, err)
		}
		logger.Debug("upserted revision",
			slog.String("date", rev.Date),
			slog.String("kind", string(rev.Kind)),
		)
	}

	// =========================================================================
	// Step 4: Verify
	// =========================================================================
	total, err := db.CountRevisions(ctx)
	if err != nil {
		return fmt.Errorf("count revisions: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("imported", len(revisions)),
		slog.Int("total_stored", total),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Rows imported:   %d\n", len(revisions))
	fmt.Printf("Total stored:    %d\n", total)
	fmt.Printf("Time elapsed:    %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// parseRevisions reads date,kind,label rows. The first row is a header and
// is skipped. Dates and kinds are validated before anything touches the
// database so a bad file fails fast.
func parseRevisions(r io.Reader) ([]database.Revision, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	var revisions []database.Revision
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			continue // header
		}

		date := strings.TrimSpace(record[0])
		kind := database.RevisionKind(strings.TrimSpace(record[1]))
		label := strings.TrimSpace(record[2])

		if _, err := custody.ParseDate(date); err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q", line, date)
		}
		if !kind.IsValid() {
			return nil, fmt.Errorf("line %d: invalid kind %q (want one of %v)",
				line, kind, database.ValidRevisionKinds())
		}

		revisions = append(revisions, database.Revision{
			Date:  date,
			Kind:  kind,
			Label: label,
		})
	}

	return revisions, nil
}
