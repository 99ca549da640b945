// Package archive stores simulation runs and their record tables in a
// SQLite database so that they can be compared and re-plotted later.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/io"
)

// ErrNotFound is returned when a run id is not in the archive.
var ErrNotFound = errors.New("run not found")

// Run describes an archived run.
type Run struct {
	ID int64
	io.TableHeader
	Steps     int
	CreatedAt time.Time
}

// Archive is a SQLite-backed store of runs.
type Archive struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens (creating if needed) the archive at path.
func Open(ctx context.Context, path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive %s: %w", path, err)
	}

	return &Archive{db: db, path: path, now: time.Now}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error { return a.db.Close() }

// Path returns the file the archive was opened from.
func (a *Archive) Path() string { return a.path }

// Save stores a run and its table in a single transaction and returns the
// run's id.
func (a *Archive) Save(
	ctx context.Context, hd *io.TableHeader, t weathering.Table,
) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (model, side1, side2, side3, density, seed, steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		hd.Model, hd.Side1, hd.Side2, hd.Side3, hd.Density, hd.Seed,
		len(t), a.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, step, count, surface_area, mean_volume,
			std_volume, mean_mass, total_volume, creation_ns, calculation_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i := range t {
		r := &t[i]
		_, err := stmt.ExecContext(ctx, id, r.Step, r.Count, r.SurfaceArea,
			r.MeanVolume, r.StdVolume, r.MeanMass, r.TotalVolume,
			int64(r.CreationTime), int64(r.CalculationTime),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert step %d: %w", r.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, model, side1, side2, side3, density, seed, steps, created_at`

func scanRun(sc interface{ Scan(...any) error }) (*Run, error) {
	run := &Run{}
	var created string
	err := sc.Scan(&run.ID, &run.Model, &run.Side1, &run.Side2, &run.Side3,
		&run.Density, &run.Seed, &run.Steps, &created)
	if err != nil {
		return nil, err
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("run %d has bad timestamp '%s'", run.ID, created)
	}
	return run, nil
}

// Runs lists every archived run, oldest first.
func (a *Archive) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Load returns an archived run and its table.
func (a *Archive) Load(
	ctx context.Context, id int64,
) (*Run, weathering.Table, error) {
	run, err := scanRun(a.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT step, count, surface_area, mean_volume, std_volume, mean_mass,
			total_volume, creation_ns, calculation_ns
		FROM records WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	t := make(weathering.Table, 0, run.Steps)
	for rows.Next() {
		var r weathering.Record
		var creation, calculation int64
		err := rows.Scan(&r.Step, &r.Count, &r.SurfaceArea, &r.MeanVolume,
			&r.StdVolume, &r.MeanMass, &r.TotalVolume,
			&creation, &calculation)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.CreationTime = time.Duration(creation)
		r.CalculationTime = time.Duration(calculation)
		t = append(t, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return run, t, nil
}

// Delete removes a run and its records.
func (a *Archive) Delete(ctx context.Context, id int64) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
