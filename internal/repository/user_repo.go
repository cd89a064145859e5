package repository

import (
	"context"
	"time"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// UserRepository defines the data access contract for system accounts.
// Services depend on this interface, not on the concrete store-backed
// implementation, enabling clean unit testing via stubs.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (int, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepo struct{ db *store.Store }

func NewUserRepository(db *store.Store) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(_ context.Context, u *model.User) (int, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	id, err := r.db.Insert(store.Users, u)
	if err != nil {
		return 0, err
	}
	u.ID = id
	return id, nil
}

func (r *userRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	doc, ok := r.db.Get(store.Users, id)
	if !ok {
		return nil, ErrNotFound
	}
	var u model.User
	if err := store.Decode(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	docs := r.db.Find(store.Users, map[string]any{"username": username})
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var u model.User
	if err := store.Decode(docs[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(_ context.Context) ([]model.User, error) {
	return decodeAll[model.User](r.db.All(store.Users))
}

// decodeAll converts raw store documents into typed models, preserving order.
func decodeAll[T any](docs []map[string]any) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := store.Decode(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
