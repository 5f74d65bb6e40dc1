package http

import (
	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

func sessionInfo(s domain.Session) termsdk.SessionInfo {
	return termsdk.SessionInfo{
		ID:         s.ID,
		Identity:   s.Identity,
		IsAdmin:    s.IsAdmin,
		ExpiryDate: s.ExpiryDate,
	}
}

func inviteCode(c domain.InviteCode) termsdk.InviteCode {
	return termsdk.InviteCode{
		Code:         c.Code,
		CreatedAt:    c.CreatedAt,
		DurationDays: c.DurationDays,
		ExpiresAt:    c.ExpiresAt,
		IsUsed:       c.IsUsed,
		UsedBy:       c.UsedBy,
		ManualBound:  c.ManualBound,
	}
}

func inviteCodes(in []domain.InviteCode) []termsdk.InviteCode {
	out := make([]termsdk.InviteCode, len(in))
	for i, c := range in {
		out[i] = inviteCode(c)
	}
	return out
}

// tokenFromWire accepts a client-supplied token snapshot.
func tokenFromWire(t termsdk.Token) domain.Token {
	return domain.Token{
		ID:             t.ID,
		Address:        t.Address,
		Name:           t.Name,
		Symbol:         t.Symbol,
		Chain:          domain.Chain(t.Chain),
		Price:          t.Price,
		PriceChange24h: t.PriceChange24h,
		Volume24h:      t.Volume24h,
		MarketCap:      t.MarketCap,
		Liquidity:      t.Liquidity,
		ImageURL:       t.ImageURL,
	}
}
