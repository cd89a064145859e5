package repository

import (
	"context"
	"time"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// NoteRepository is append-only: notes are never edited or removed, they
// only become orphaned when their job goes away.
type NoteRepository interface {
	Create(ctx context.Context, n *model.Note) (int, error)
	ListByJob(ctx context.Context, jobID int) ([]model.Note, error)
}

type noteRepo struct{ db *store.Store }

func NewNoteRepository(db *store.Store) NoteRepository { return &noteRepo{db: db} }

func (r *noteRepo) Create(_ context.Context, n *model.Note) (int, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	id, err := r.db.Insert(store.Notes, n)
	if err != nil {
		return 0, err
	}
	n.ID = id
	return id, nil
}

// ListByJob returns the job's notes in insertion order (oldest first).
func (r *noteRepo) ListByJob(_ context.Context, jobID int) ([]model.Note, error) {
	return decodeAll[model.Note](r.db.Find(store.Notes, map[string]any{"job_id": jobID}))
}
