package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsSaved int
	SetsImported  int
	RowsDropped   int

	UnknownExercises []string
}

// Importer reads workout CSV files and saves them as sessions for one user.
// CSV columns: date (YYYY-MM-DD), exercise (catalog name), reps, weight.
// Reps and weight may each be empty; rows with both empty are dropped, as
// are rows naming an exercise not in the catalog.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import processes the given path — a CSV file or a directory of CSV
// files — for the user. Files already recorded in the state db with the
// same size and hash are skipped. Each date found becomes one session
// save, replacing whatever that date held before.
func (imp *Importer) Import(ctx context.Context, state *StateDB, userID uuid.UUID, path string) (*Stats, error) {
	catalog, err := imp.loadCatalog(ctx)
	if err != nil {
		return &imp.stats, err
	}

	files, err := collectCSVFiles(path)
	if err != nil {
		return &imp.stats, err
	}

	for _, file := range files {
		if err := imp.importFile(ctx, state, userID, catalog, file); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import file failed", "file", file, "error", err)
			continue
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, state *StateDB, userID uuid.UUID, catalog map[string]uuid.UUID, path string) error {
	size, hash, err := Fingerprint(path)
	if err != nil {
		return err
	}

	done, err := state.IsImported(path, size, hash)
	if err != nil {
		return fmt.Errorf("checking state for %s: %w", path, err)
	}
	if done {
		imp.stats.FilesSkipped++
		imp.log.Info("already imported, skipping", "file", path)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	days, dropped, unknown, err := ParseCSV(f, catalog)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	imp.stats.RowsDropped += dropped
	for _, name := range unknown {
		imp.stats.UnknownExercises = append(imp.stats.UnknownExercises, name)
	}

	// Sorted dates so reruns of a failed file make the same progress.
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	fileSessions, fileSets := 0, 0
	for _, dateStr := range dates {
		sets := days[dateStr]
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		if imp.dryRun {
			imp.log.Info("dry run: would save session", "date", dateStr, "sets", len(sets))
		} else {
			if err := imp.db.SaveSession(ctx, userID, date, sets); err != nil {
				return fmt.Errorf("saving session %s: %w", dateStr, err)
			}
		}
		fileSessions++
		fileSets += len(sets)
	}
	imp.stats.SessionsSaved += fileSessions
	imp.stats.SetsImported += fileSets

	if !imp.dryRun {
		if err := state.MarkImported(path, size, hash, fileSessions, fileSets); err != nil {
			return fmt.Errorf("marking %s imported: %w", path, err)
		}
	}
	imp.stats.FilesProcessed++
	return nil
}

// loadCatalog maps lowercase exercise names to IDs across all categories.
func (imp *Importer) loadCatalog(ctx context.Context) (map[string]uuid.UUID, error) {
	exercises, err := imp.db.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exercise catalog: %w", err)
	}
	catalog := make(map[string]uuid.UUID, len(exercises))
	for _, e := range exercises {
		catalog[strings.ToLower(e.Name)] = e.ID
	}
	return catalog, nil
}

func collectCSVFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ParseCSV reads rows of date,exercise,reps,weight and groups the kept
// sets by date. A header row is detected and skipped. Returns the grouped
// sets, the count of dropped rows, and the distinct unknown exercise names.
func ParseCSV(r io.Reader, catalog map[string]uuid.UUID) (map[string][]models.SetInput, int, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	days := make(map[string][]models.SetInput)
	dropped := 0
	unknownSet := make(map[string]bool)
	var unknown []string

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, nil, fmt.Errorf("reading csv: %w", err)
		}
		if first {
			first = false
			if strings.EqualFold(record[0], "date") {
				continue
			}
		}

		dateStr := strings.TrimSpace(record[0])
		if _, err := time.Parse("2006-01-02", dateStr); err != nil {
			return nil, 0, nil, fmt.Errorf("invalid date %q", record[0])
		}

		name := strings.ToLower(strings.TrimSpace(record[1]))
		exerciseID, ok := catalog[name]
		if !ok {
			if !unknownSet[name] {
				unknownSet[name] = true
				unknown = append(unknown, name)
			}
			dropped++
			continue
		}

		reps, err := parseOptionalInt(record[2])
		if err != nil {
			return nil, 0, nil, fmt.Errorf("invalid reps %q", record[2])
		}
		weight, err := parseOptionalFloat(record[3])
		if err != nil {
			return nil, 0, nil, fmt.Errorf("invalid weight %q", record[3])
		}
		if reps == nil && weight == nil {
			dropped++
			continue
		}

		days[dateStr] = append(days[dateStr], models.SetInput{
			ExerciseID: exerciseID,
			Reps:       reps,
			Weight:     weight,
		})
	}

	return days, dropped, unknown, nil
}

func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
