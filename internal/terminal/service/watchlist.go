package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
)

var ErrInvalidToken = errors.New("token id is required")

// WatchlistService keeps a per-identity set of token snapshots keyed by id.
type WatchlistService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *WatchlistService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Toggle adds the token if absent, otherwise removes it. It returns whether
// the token is in the watchlist afterwards.
func (s *WatchlistService) Toggle(ctx context.Context, identity string, t domain.Token) (bool, error) {
	if strings.TrimSpace(t.ID) == "" {
		return false, ErrInvalidToken
	}

	var member bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		has, err := tx.Watchlists().WatchlistContains(ctx, identity, t.ID)
		if err != nil {
			return err
		}
		if has {
			_, err = tx.Watchlists().RemoveWatchlistItem(ctx, identity, t.ID)
			return err
		}
		member = true
		_, err = tx.Watchlists().AddWatchlistItem(ctx, identity, t, s.now())
		return err
	})
	return member, err
}

func (s *WatchlistService) Add(ctx context.Context, identity string, t domain.Token) error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrInvalidToken
	}
	_, err := s.Store.Watchlists().AddWatchlistItem(ctx, identity, t, s.now())
	return err
}

func (s *WatchlistService) Remove(ctx context.Context, identity, tokenID string) error {
	_, err := s.Store.Watchlists().RemoveWatchlistItem(ctx, identity, tokenID)
	return err
}

func (s *WatchlistService) List(ctx context.Context, identity string) ([]domain.Token, error) {
	return s.Store.Watchlists().ListWatchlist(ctx, identity)
}

func (s *WatchlistService) Contains(ctx context.Context, identity, tokenID string) (bool, error) {
	return s.Store.Watchlists().WatchlistContains(ctx, identity, tokenID)
}
