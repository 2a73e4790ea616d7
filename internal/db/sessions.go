package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/gearshift/internal/types"
)

// CreateSession creates a new session record and returns its ID.
func (db *DB) CreateSession(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (status) VALUES ($1) RETURNING id`,
		types.StatusProcessing,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// CompleteSession marks a session finished and stores its warnings.
func (db *DB) CompleteSession(ctx context.Context, sessionID uuid.UUID, status string, warnings []string) error {
	if warnings == nil {
		warnings = []string{}
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE sessions SET status = $1, warnings = $2, completed_at = NOW() WHERE id = $3`,
		status, warnings, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// SaveImage stores one screenshot's transcript and confidence for
// provenance display.
func (db *DB) SaveImage(ctx context.Context, sessionID uuid.UUID, index int, transcript string, confidence float64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO session_images (session_id, image_index, transcript, confidence)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, image_index) DO UPDATE SET transcript = $3, confidence = $4`,
		sessionID, index, transcript, confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to save image %d: %w", index, err)
	}
	return nil
}

// SaveShifts stores the reconciled shifts for a session.
func (db *DB) SaveShifts(ctx context.Context, sessionID uuid.UUID, shifts []types.Shift) error {
	for _, s := range shifts {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO shifts (id, session_id, shift_date, start_time, end_time, title, source_index)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, sessionID, s.Date, s.StartTime, s.EndTime, s.Title, s.SourceIndex,
		)
		if err != nil {
			return fmt.Errorf("failed to save shift %s: %w", s.Date, err)
		}
	}
	return nil
}

// GetSession retrieves a session with its shifts, warnings, and per-image
// reports. Returns nil when the session does not exist.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	session := &types.Session{ID: sessionID}
	err := db.pool.QueryRow(ctx,
		`SELECT status, warnings, created_at, completed_at FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.Status, &session.Warnings, &session.CreatedAt, &session.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	shifts, err := db.ListShifts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Shifts = shifts

	images, err := db.listImages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Images = images

	return session, nil
}

// ListShifts returns a session's shifts in chronological order.
func (db *DB) ListShifts(ctx context.Context, sessionID uuid.UUID) ([]types.Shift, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, shift_date, start_time, end_time, title, source_index
		 FROM shifts WHERE session_id = $1
		 ORDER BY shift_date, start_time`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []types.Shift
	for rows.Next() {
		var s types.Shift
		if err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Title, &s.SourceIndex); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shifts: %w", err)
	}
	return shifts, nil
}

// UpdateShift edits one shift in the review step. Returns false when no row
// matched.
func (db *DB) UpdateShift(ctx context.Context, sessionID, shiftID uuid.UUID, req types.UpdateShiftRequest) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE shifts SET shift_date = $1, start_time = $2, end_time = $3, title = $4
		 WHERE id = $5 AND session_id = $6`,
		req.Date, req.StartTime, req.EndTime, req.Title, shiftID, sessionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update shift: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteShift removes one shift from a session. Returns false when no row
// matched.
func (db *DB) DeleteShift(ctx context.Context, sessionID, shiftID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM shifts WHERE id = $1 AND session_id = $2`,
		shiftID, sessionID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete shift: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// listImages returns the per-image provenance reports for a session.
func (db *DB) listImages(ctx context.Context, sessionID uuid.UUID) ([]types.ImageReport, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT i.image_index, i.transcript, i.confidence,
		        (SELECT COUNT(*) FROM shifts s WHERE s.session_id = i.session_id AND s.source_index = i.image_index)
		 FROM session_images i WHERE i.session_id = $1
		 ORDER BY i.image_index`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []types.ImageReport
	for rows.Next() {
		var img types.ImageReport
		if err := rows.Scan(&img.Index, &img.Transcript, &img.Confidence, &img.Shifts); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read images: %w", err)
	}
	return images, nil
}
