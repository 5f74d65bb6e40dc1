package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

type watchlistsRepo struct {
	q *Queries
}

func (r *watchlistsRepo) AddWatchlistItem(ctx context.Context, identity string, t domain.Token, addedAt time.Time) (bool, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return false, fmt.Errorf("encode token snapshot: %w", err)
	}
	n, err := r.q.InsertWatchlistItem(ctx, identity, t.ID, string(raw), addedAt.UTC())
	return n == 1, err
}

func (r *watchlistsRepo) RemoveWatchlistItem(ctx context.Context, identity, tokenID string) (bool, error) {
	n, err := r.q.DeleteWatchlistItem(ctx, identity, tokenID)
	return n == 1, err
}

// ListWatchlist skips rows whose snapshot no longer decodes rather than
// failing the whole list.
func (r *watchlistsRepo) ListWatchlist(ctx context.Context, identity string) ([]domain.Token, error) {
	raws, err := r.q.ListWatchlistJSON(ctx, identity)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Token, 0, len(raws))
	for _, raw := range raws {
		var t domain.Token
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *watchlistsRepo) WatchlistContains(ctx context.Context, identity, tokenID string) (bool, error) {
	return r.q.WatchlistContains(ctx, identity, tokenID)
}
