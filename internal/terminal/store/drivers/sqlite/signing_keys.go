package sqlite

import (
	"context"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

type signingKeysRepo struct {
	q *Queries
}

func (r *signingKeysRepo) ListSigningKeys(ctx context.Context) ([]domain.SigningKey, error) {
	rows, err := r.q.ListSigningKeys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SigningKey, len(rows))
	for i, row := range rows {
		out[i] = domain.SigningKey{Kid: row.Kid, PrivateKeyPEM: row.PrivateKeyPEM, CreatedAt: row.CreatedAt.UTC()}
	}
	return out, nil
}

func (r *signingKeysRepo) CreateSigningKey(ctx context.Context, k domain.SigningKey) error {
	return r.q.InsertSigningKey(ctx, signingKeyRow{Kid: k.Kid, PrivateKeyPEM: k.PrivateKeyPEM, CreatedAt: k.CreatedAt.UTC()})
}
