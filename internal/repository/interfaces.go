package repository

import (
	"context"

	"socialmedia/internal/snapshot"
)

// SnapshotRepository stores the whole platform graph in relational form. It
// satisfies snapshot.Store so the service can swap it for the file or object
// stores.
type SnapshotRepository interface {
	Save(ctx context.Context, s *snapshot.Snapshot) error
	Load(ctx context.Context) (*snapshot.Snapshot, error)
	// Clear removes the stored snapshot. Load returns snapshot.ErrNotFound afterwards.
	Clear(ctx context.Context) error
}

var _ snapshot.Store = (SnapshotRepository)(nil)
