package sqlite

import (
	"context"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
)

type inviteCodesRepo struct {
	q *Queries
}

func (r *inviteCodesRepo) CreateInviteCode(ctx context.Context, c domain.InviteCode) error {
	n, err := r.q.InsertInviteCode(ctx, inviteCodeRow{
		Code:         c.Code,
		CreatedAt:    c.CreatedAt.UTC(),
		DurationDays: mapOptionalInt(c.DurationDays),
		ExpiresAt:    mapOptionalTime(c.ExpiresAt),
		IsUsed:       c.IsUsed,
		UsedBy:       mapStringNull(c.UsedBy),
		ManualBound:  c.ManualBound,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *inviteCodesRepo) GetInviteCode(ctx context.Context, code string) (domain.InviteCode, error) {
	row, err := r.q.GetInviteCode(ctx, code)
	if err != nil {
		return domain.InviteCode{}, mapNotFound(err)
	}
	return mapInviteCode(row), nil
}

func (r *inviteCodesRepo) ListInviteCodes(ctx context.Context) ([]domain.InviteCode, error) {
	rows, err := r.q.ListInviteCodes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InviteCode, len(rows))
	for i, row := range rows {
		out[i] = mapInviteCode(row)
	}
	return out, nil
}

func (r *inviteCodesRepo) CountInviteCodes(ctx context.Context) (int, error) {
	return r.q.CountInviteCodes(ctx)
}

func (r *inviteCodesRepo) ClaimInviteCode(ctx context.Context, code, identity string) (bool, error) {
	n, err := r.q.ClaimInviteCode(ctx, code, identity)
	return n == 1, err
}

func (r *inviteCodesRepo) BindInviteCode(ctx context.Context, code, identity string) error {
	n, err := r.q.BindInviteCode(ctx, code, identity)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *inviteCodesRepo) UnbindInviteCode(ctx context.Context, code string) error {
	n, err := r.q.UnbindInviteCode(ctx, code)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *inviteCodesRepo) DeleteInviteCode(ctx context.Context, code string) error {
	return r.q.DeleteInviteCode(ctx, code)
}

func mapInviteCode(row inviteCodeRow) domain.InviteCode {
	return domain.InviteCode{
		Code:         row.Code,
		CreatedAt:    row.CreatedAt.UTC(),
		DurationDays: mapNullIntPtr(row.DurationDays),
		ExpiresAt:    mapNullTimePtr(row.ExpiresAt),
		IsUsed:       row.IsUsed,
		UsedBy:       mapNullString(row.UsedBy),
		ManualBound:  row.ManualBound,
	}
}
