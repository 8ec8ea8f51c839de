// Package repository holds rendered frames for the viewer.
package repository

import (
	"context"

	"github.com/okian/debtfx/internal/domain/frame"
)

// Entry is one rendered year.
type Entry struct {
	Summary frame.Summary
	PNG     []byte
}

// Year returns the entry's year.
func (e Entry) Year() int { return e.Summary.Year }

// Store provides read/write access to the published frames.
type Store interface {
	// Publish replaces the stored frames. Entries are kept in year order;
	// a repeated year keeps the last entry.
	Publish(ctx context.Context, entries []Entry) error

	// Get returns the frame for year or ErrNotFound.
	Get(ctx context.Context, year int) (Entry, error)

	// Summaries lists stored frames in year order.
	Summaries(ctx context.Context) []frame.Summary

	// Len returns the number of stored frames.
	Len(ctx context.Context) int
}
