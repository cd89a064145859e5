package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/pricing"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *model.Quote) (int, error)
	FindByID(ctx context.Context, id int) (*model.Quote, error)
	List(ctx context.Context) ([]model.Quote, error)
	// LatestForJob returns the job's most recent quote by created_at;
	// on equal timestamps the later-inserted quote wins. ErrNotFound when
	// the job has no quotes.
	LatestForJob(ctx context.Context, jobID int) (*model.Quote, error)
	// BackfillTotals persists subtotal/igv/total on quotes written by older
	// versions that stored items only. Runs once at startup so reads never
	// have to recompute defensively. Returns how many quotes were patched.
	BackfillTotals(ctx context.Context) (int, error)
}

type quoteRepo struct{ db *store.Store }

func NewQuoteRepository(db *store.Store) QuoteRepository { return &quoteRepo{db: db} }

func (r *quoteRepo) Create(_ context.Context, q *model.Quote) (int, error) {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.Currency == "" {
		q.Currency = "PEN"
	}
	if q.IGVRate.IsZero() {
		q.IGVRate = pricing.DefaultIGVRate
	}
	q.Items = pricing.FillLineTotals(q.Items)
	q.Subtotal, q.IGV, q.Total = pricing.Totals(q.Items, q.RequireInvoice, q.IGVRate)

	id, err := r.db.Insert(store.Quotes, q)
	if err != nil {
		return 0, err
	}
	q.ID = id
	return id, nil
}

func (r *quoteRepo) FindByID(_ context.Context, id int) (*model.Quote, error) {
	doc, ok := r.db.Get(store.Quotes, id)
	if !ok {
		return nil, ErrNotFound
	}
	var q model.Quote
	if err := store.Decode(doc, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepo) List(_ context.Context) ([]model.Quote, error) {
	return decodeAll[model.Quote](r.db.All(store.Quotes))
}

func (r *quoteRepo) LatestForJob(ctx context.Context, jobID int) (*model.Quote, error) {
	quotes, err := decodeAll[model.Quote](r.db.Find(store.Quotes, map[string]any{"job_id": jobID}))
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, ErrNotFound
	}
	// Stable ascending sort keeps insertion order as the tie-break when
	// created_at collides at second resolution; the last element is the
	// most recent quote.
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.Before(quotes[j].CreatedAt)
	})
	return &quotes[len(quotes)-1], nil
}

func (r *quoteRepo) BackfillTotals(_ context.Context) (int, error) {
	patched := 0
	for _, doc := range r.db.All(store.Quotes) {
		_, hasSubtotal := doc["subtotal"]
		_, hasIGV := doc["igv"]
		_, hasTotal := doc["total"]
		if hasSubtotal && hasIGV && hasTotal {
			continue
		}

		var q model.Quote
		if err := store.Decode(doc, &q); err != nil {
			return patched, err
		}
		if q.IGVRate.IsZero() {
			q.IGVRate = pricing.DefaultIGVRate
		}
		subtotal, igv, total := pricing.Totals(q.Items, q.RequireInvoice, q.IGVRate)
		err := r.db.Update(store.Quotes, q.ID, map[string]any{
			"subtotal": subtotal,
			"igv":      igv,
			"total":    total,
			"igv_rate": q.IGVRate,
		})
		if err != nil {
			return patched, err
		}
		patched++
		log.Info().Int("quote_id", q.ID).Str("total", total.StringFixed(2)).
			Msg("quote totals backfilled")
	}
	return patched, nil
}

// IsNotFound reports whether err is the repository's not-found sentinel.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
