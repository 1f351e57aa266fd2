package archive

import (
	"context"
	"fmt"
	"time"
)

// WriteRun inserts a run record and its element rows in a single transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run ID
// twice is silently ignored and the original rows are kept.
//
// CreatedAt is normalized to UTC before storage so the created_at column
// sorts chronologically as text.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, command, driver, method, basis, n_atoms, n_shells, n_basis, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Command,
		run.Driver,
		run.Method,
		run.Basis,
		run.NAtoms,
		run.NShells,
		run.NBasis,
		run.Status,
		run.Detail,
	)
	if err != nil {
		return fmt.Errorf("write run: insert: %w", err)
	}

	// Check if a row was actually inserted
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write run: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		// New run - record its elements in first-occurrence order
		for position, element := range run.Elements {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO run_elements
				(run_id, position, element)
				VALUES (?, ?, ?)
			`, run.ID, position, element); err != nil {
				return fmt.Errorf("write run: element %d: %w", position, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}

	return nil
}
