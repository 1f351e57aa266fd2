package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListRuns returns the most recent runs, newest first.
// Results are ordered deterministically: ORDER BY created_at DESC, id ASC
// COLLATE BINARY, so two runs sharing a timestamp always list in the same
// order. A limit <= 0 returns all runs.
//
// Returns an empty slice (not nil) if the ledger is empty.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as "no limit"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, command, driver, method, basis,
		       n_atoms, n_shells, n_basis, status, detail
		FROM runs
		ORDER BY created_at DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		return []Run{}, nil
	}

	// Batch-load elements for all listed runs to avoid N+1 queries
	ids := make([]string, len(runs))
	for i, run := range runs {
		ids[i] = run.ID
	}
	elements, err := s.readElementsForRuns(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].Elements = elements[runs[i].ID]
		if runs[i].Elements == nil {
			runs[i].Elements = []string{}
		}
	}

	return runs, nil
}

// GetRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, command, driver, method, basis,
		       n_atoms, n_shells, n_basis, status, detail
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRunRow(row)
	if err != nil {
		return Run{}, err
	}

	elements, err := s.readElementsForRuns(ctx, []string{run.ID})
	if err != nil {
		return Run{}, err
	}
	run.Elements = elements[run.ID]
	if run.Elements == nil {
		run.Elements = []string{}
	}

	return run, nil
}

// readElementsForRuns returns the element rows for a set of run IDs,
// keyed by run ID, each list in stored position order. This is a batch
// operation to avoid N+1 queries when listing multiple runs.
func (s *Store) readElementsForRuns(ctx context.Context, runIDs []string) (map[string][]string, error) {
	if len(runIDs) == 0 {
		return map[string][]string{}, nil
	}

	// Build placeholder string for IN clause
	placeholders := make([]byte, 0, len(runIDs)*2-1)
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = id
	}

	query := `
		SELECT run_id, element
		FROM run_elements
		WHERE run_id IN (` + string(placeholders) + `)
		ORDER BY run_id COLLATE BINARY ASC, position ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run elements: %w", err)
	}
	defer rows.Close()

	elements := make(map[string][]string)
	for rows.Next() {
		var runID, element string
		if err := rows.Scan(&runID, &element); err != nil {
			return nil, fmt.Errorf("scan run element: %w", err)
		}
		elements[runID] = append(elements[runID], element)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run elements: %w", err)
	}

	return elements, nil
}

// scanRun scans a row into a Run struct.
func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var createdAt string

	if err := rows.Scan(
		&run.ID, &createdAt, &run.Command, &run.Driver, &run.Method, &run.Basis,
		&run.NAtoms, &run.NShells, &run.NBasis, &run.Status, &run.Detail,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts

	return run, nil
}

// scanRunRow scans a single row into a Run struct.
func scanRunRow(row *sql.Row) (Run, error) {
	var run Run
	var createdAt string

	if err := row.Scan(
		&run.ID, &createdAt, &run.Command, &run.Driver, &run.Method, &run.Basis,
		&run.NAtoms, &run.NShells, &run.NBasis, &run.Status, &run.Detail,
	); err != nil {
		return Run{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts

	return run, nil
}
