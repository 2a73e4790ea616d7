// Package pipeline provides the high-level orchestration for one parsing
// session: OCR every screenshot, classify each transcript, reconcile the
// candidates across screenshots, and optionally persist the result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/gearshift/internal/db"
	"github.com/jonathan/gearshift/internal/ocr"
	"github.com/jonathan/gearshift/internal/reconcile"
	"github.com/jonathan/gearshift/internal/schedule"
	"github.com/jonathan/gearshift/internal/types"
)

// DefaultConcurrency bounds how many screenshots are recognized in
// parallel. OCR calls are the only long-running work in a session; the
// parser and reconciler are cheap, synchronous, in-memory logic.
const DefaultConcurrency = 4

// ProgressEvent represents a progress update during a session run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs. It may be
// invoked concurrently from the recognition goroutines, so implementations
// that accumulate state must synchronize.
type ProgressCallback func(event ProgressEvent)

// ImageInput is one screenshot handed to the pipeline.
type ImageInput struct {
	Name string // display name, e.g. the upload filename
	Data []byte
	MIME string // e.g. "image/png"
}

// RunOptions holds configuration for running one session.
type RunOptions struct {
	Images      []ImageInput
	Recognizer  ocr.Client        // required
	Parser      *schedule.Parser  // nil uses schedule defaults
	Database    *db.DB            // nil skips persistence
	Concurrency int               // 0 uses DefaultConcurrency
	OnProgress  ProgressCallback
}

// RunResult is the outcome of one session.
type RunResult struct {
	Session types.Session
}

// emitProgress calls the progress callback if configured.
func emitProgress(opts *RunOptions, step, format string, args ...any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: fmt.Sprintf(format, args...)})
	}
}

// Run executes the full session pipeline. Recognition runs concurrently
// with bounded parallelism; everything downstream is deterministic
// single-pass logic ordered by image index. Per-image OCR failures become
// zero-confidence empty transcripts rather than aborting the batch, so one
// bad upload degrades to a warning instead of losing the session.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if len(opts.Images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}
	if opts.Recognizer == nil {
		return nil, fmt.Errorf("recognizer is required")
	}

	parser := opts.Parser
	if parser == nil {
		parser = schedule.NewParser(nil)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Recognize all screenshots. Results land in index order so overlap
	// deduplication stays deterministic ("first image wins").
	transcripts := make([]ocr.Result, len(opts.Images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, img := range opts.Images {
		g.Go(func() error {
			emitProgress(&opts, "ocr", "Recognizing screenshot %d/%d (%s)", i+1, len(opts.Images), img.Name)
			res, err := opts.Recognizer.Recognize(gctx, img.Data, img.MIME)
			if err != nil {
				// Context cancellation aborts the batch; anything else is a
				// per-image failure the reconciler turns into a warning.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				emitProgress(&opts, "ocr", "Screenshot %d failed recognition: %v", i+1, err)
				transcripts[i] = ocr.Result{}
				return nil
			}
			transcripts[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recognition aborted: %w", err)
	}

	// Classify each transcript with a fresh context, then reconcile.
	images := make([]reconcile.Image, len(transcripts))
	for i, tr := range transcripts {
		candidates := parser.Parse(tr.Text)
		emitProgress(&opts, "parse", "Screenshot %d/%d yielded %d candidate shift(s)", i+1, len(transcripts), len(candidates))
		images[i] = reconcile.Image{Index: i, Confidence: tr.Confidence, Candidates: candidates}
	}

	reconciled, err := reconcile.Reconcile(images)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, "reconcile", "Reconciled %d shift(s), %d warning(s)", len(reconciled.Shifts), len(reconciled.Warnings))

	session := types.Session{
		Status:    types.StatusCompleted,
		Warnings:  reconciled.Warnings,
		CreatedAt: time.Now().UTC(),
	}
	for _, c := range reconciled.Shifts {
		session.Shifts = append(session.Shifts, types.FromCandidate(c))
	}
	for i, tr := range transcripts {
		session.Images = append(session.Images, types.ImageReport{
			Index:      i,
			Transcript: tr.Text,
			Confidence: tr.Confidence,
			Shifts:     len(images[i].Candidates),
		})
	}

	if opts.Database != nil {
		if err := persist(ctx, opts.Database, &session); err != nil {
			// A persistence failure still returns the parsed shifts.
			emitProgress(&opts, "persist", "Failed to persist session: %v", err)
			session.Warnings = append(session.Warnings, fmt.Sprintf("Session was not saved: %v", err))
		}
	}

	return &RunResult{Session: session}, nil
}

// persist writes the finished session to the database.
func persist(ctx context.Context, database *db.DB, session *types.Session) error {
	sessionID, err := database.CreateSession(ctx)
	if err != nil {
		return err
	}
	session.ID = sessionID

	for _, img := range session.Images {
		if err := database.SaveImage(ctx, sessionID, img.Index, img.Transcript, img.Confidence); err != nil {
			return err
		}
	}
	if err := database.SaveShifts(ctx, sessionID, session.Shifts); err != nil {
		return err
	}
	return database.CompleteSession(ctx, sessionID, types.StatusCompleted, session.Warnings)
}
