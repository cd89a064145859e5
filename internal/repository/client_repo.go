package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// ClientPatch carries partial updates; nil fields are left untouched.
type ClientPatch struct {
	FullName *string
	Phone    *string
	Email    *string
}

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (int, error)
	FindByID(ctx context.Context, id int) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, id int, patch ClientPatch) error
	// Delete removes the client and cascades: every vehicle of the client is
	// deleted along with that vehicle's jobs. Notes and quotes referencing
	// the deleted jobs/vehicles keep their (now orphaned) references.
	// The cascade is a sequence of independent store writes, not a
	// transaction; a persistence failure aborts mid-cascade and is returned.
	Delete(ctx context.Context, id int) error
}

type clientRepo struct{ db *store.Store }

func NewClientRepository(db *store.Store) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(_ context.Context, c *model.Client) (int, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	id, err := r.db.Insert(store.Clients, c)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *clientRepo) FindByID(_ context.Context, id int) (*model.Client, error) {
	doc, ok := r.db.Get(store.Clients, id)
	if !ok {
		return nil, ErrNotFound
	}
	var c model.Client
	if err := store.Decode(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) List(_ context.Context) ([]model.Client, error) {
	return decodeAll[model.Client](r.db.All(store.Clients))
}

func (r *clientRepo) Update(_ context.Context, id int, patch ClientPatch) error {
	p := map[string]any{}
	if patch.FullName != nil {
		p["full_name"] = *patch.FullName
	}
	if patch.Phone != nil {
		p["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		p["email"] = *patch.Email
	}
	if len(p) == 0 {
		return nil
	}
	return r.db.Update(store.Clients, id, p)
}

func (r *clientRepo) Delete(_ context.Context, id int) error {
	if err := r.db.Remove(store.Clients, id); err != nil {
		return err
	}
	vehicles := r.db.Find(store.Vehicles, map[string]any{"client_id": id})
	for _, v := range vehicles {
		vid := store.DocID(v)
		for _, j := range r.db.Find(store.Jobs, map[string]any{"vehicle_id": vid}) {
			if err := r.db.Remove(store.Jobs, store.DocID(j)); err != nil {
				return fmt.Errorf("cascade client %d: %w", id, err)
			}
		}
		if err := r.db.Remove(store.Vehicles, vid); err != nil {
			return fmt.Errorf("cascade client %d: %w", id, err)
		}
	}
	return nil
}
