package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

type sessionsRepo struct {
	q *Queries
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	return r.q.InsertSession(ctx, sessionRow{
		ID:         s.ID,
		Identity:   s.Identity,
		IsAdmin:    s.IsAdmin,
		ExpiryDate: s.ExpiryDate.UTC(),
		Code:       mapStringNull(s.Code),
		CreatedAt:  s.CreatedAt.UTC(),
	})
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	row, err := r.q.GetSession(ctx, id)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return domain.Session{
		ID:         row.ID,
		Identity:   row.Identity,
		IsAdmin:    row.IsAdmin,
		ExpiryDate: row.ExpiryDate.UTC(),
		Code:       mapNullString(row.Code),
		CreatedAt:  row.CreatedAt.UTC(),
	}, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	return r.q.DeleteSession(ctx, id)
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSessions(ctx, now.UTC())
}
