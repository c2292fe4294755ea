package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/avgang/internal/state"
	"github.com/five82/avgang/internal/vasttrafik"
)

// Refresher runs one token + departures cycle against a DepartureSource and
// records the outcome in the store.
type Refresher struct {
	source vasttrafik.DepartureSource
	store  *state.Store
	query  vasttrafik.DepartureQuery
	now    func() time.Time
}

// NewRefresher returns a Refresher for the stop area gid using the default
// departure query.
func NewRefresher(source vasttrafik.DepartureSource, store *state.Store, gid string) *Refresher {
	return &Refresher{
		source: source,
		store:  store,
		query:  vasttrafik.NewDepartureQuery(gid),
		now:    time.Now,
	}
}

// Refresh fetches a fresh token and then the departures starting now. On
// failure the store keeps its last good list and the error is logged and
// returned; no retry happens before the next cycle.
func (r *Refresher) Refresh(ctx context.Context) error {
	token, err := r.source.FetchToken(ctx)
	if err != nil {
		return r.fail("token fetch", err)
	}

	list, err := r.source.FetchDepartures(ctx, token, r.query.WithStart(r.now()))
	if err != nil {
		return r.fail("departures fetch", err)
	}

	r.store.Update(list)
	return nil
}

func (r *Refresher) fail(stage string, err error) error {
	failures := r.store.Fail(err)
	log.Printf("%s failed (%d consecutive): %v", stage, failures, err)
	return fmt.Errorf("%s: %w", stage, err)
}
