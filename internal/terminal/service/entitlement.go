package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/aussiebroadwan/gemterm/pkg/idx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

var (
	ErrInvalidCode       = errors.New("invite code is invalid")
	ErrCodeExpired       = errors.New("invite code has expired")
	ErrCodeAlreadyBound  = errors.New("invite code is bound to another identity")
	ErrMalformedIdentity = errors.New("identity must be an email address")
	ErrInvalidDuration   = errors.New("duration must be between one day and 36500 days, or lifetime")
	ErrCodeTaken         = errors.New("invite code already exists")
)

const (
	// CodePrefix starts every generated invite code.
	CodePrefix = "GEM-"
	codeLength = 10

	DefaultSessionTTL = 365 * 24 * time.Hour

	issueAttempts = 5
)

// EntitlementService owns the invite-code ledger and admission decisions.
type EntitlementService struct {
	Store store.Store

	// AdminIdentity together with the master code yields an admin session
	// without consulting the ledger.
	AdminIdentity  string
	MasterCodeHash string // argon2id, see cryptox.HashSecret

	SessionTTL   time.Duration
	ExpiryPolicy domain.SessionExpiryPolicy

	Metrics *telemetry.Metrics
	Now     func() time.Time
}

func (s *EntitlementService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *EntitlementService) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

// Redeem decides whether identity may enter with presentedCode and returns
// the (unpersisted) session it is entitled to.
func (s *EntitlementService) Redeem(ctx context.Context, identity, presentedCode string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Minimal identity shape check.
	identity = strings.TrimSpace(identity)
	if !strings.Contains(identity, "@") {
		s.Metrics.Redemption("malformed_identity")
		return domain.Session{}, ErrMalformedIdentity
	}
	code := strings.TrimSpace(presentedCode)
	now := s.now()
	isAdmin := s.AdminIdentity != "" && identity == s.AdminIdentity

	// 2. Master code path bypasses the ledger entirely.
	if isAdmin && s.MasterCodeHash != "" && cryptox.VerifySecret(code, s.MasterCodeHash) == nil {
		log.Info("admin admitted with master code", slog.String("identity", identity))
		s.Metrics.Redemption("admin_master")
		return s.newSession(identity, true, "", now, nil), nil
	}

	// 3. Ledger path.
	var entry domain.InviteCode
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		entry, err = tx.InviteCodes().GetInviteCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCode
			}
			return err
		}

		if err := checkAdmission(entry, identity, isAdmin, now); err != nil {
			return err
		}

		// The admin never consumes or rebinds a code.
		if isAdmin || entry.IsUsed {
			return nil
		}

		claimed, err := tx.InviteCodes().ClaimInviteCode(ctx, code, identity)
		if err != nil {
			return err
		}
		if claimed {
			entry.IsUsed, entry.UsedBy = true, identity
			return nil
		}

		// Lost a race with another redemption: re-read and re-apply the rules.
		entry, err = tx.InviteCodes().GetInviteCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCode
			}
			return err
		}
		return checkAdmission(entry, identity, false, now)
	})
	if err != nil {
		s.Metrics.Redemption(outcomeFor(err))
		if isDomainRejection(err) {
			log.Warn("redemption rejected",
				slog.String("identity", identity),
				slog.String("reason", err.Error()),
			)
		} else {
			log.Error("redemption failed", slog.Any("error", err))
		}
		return domain.Session{}, err
	}

	s.Metrics.Redemption("granted")
	log.Info("invite code redeemed",
		slog.String("identity", identity),
		slog.Bool("admin", isAdmin),
		slog.Bool("lifetime", entry.Lifetime()),
	)
	return s.newSession(identity, isAdmin, entry.Code, now, entry.ExpiresAt), nil
}

func checkAdmission(entry domain.InviteCode, identity string, isAdmin bool, now time.Time) error {
	if entry.ExpiredAt(now) {
		return ErrCodeExpired
	}
	if entry.IsUsed && entry.UsedBy != identity && !isAdmin {
		return ErrCodeAlreadyBound
	}
	return nil
}

func (s *EntitlementService) newSession(identity string, admin bool, code string, now time.Time, codeExpiry *time.Time) domain.Session {
	expiry := now.Add(s.ttl())
	if s.ExpiryPolicy == domain.ExpiryCapToCode && codeExpiry != nil && codeExpiry.Before(expiry) {
		expiry = *codeExpiry
	}
	return domain.Session{
		ID:         idx.NewAt(now).String(),
		Identity:   identity,
		IsAdmin:    admin,
		ExpiryDate: expiry,
		Code:       code,
		CreatedAt:  now,
	}
}

// IssueCode mints a fresh random code.
func (s *EntitlementService) IssueCode(ctx context.Context, d domain.CodeDuration) (domain.InviteCode, error) {
	log := slogx.FromContext(ctx)

	if err := validateDuration(d); err != nil {
		return domain.InviteCode{}, err
	}

	for range issueAttempts {
		code, err := cryptox.GenerateCode(CodePrefix, codeLength)
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return domain.InviteCode{}, err
		}
		entry, err := s.IssueNamedCode(ctx, code, d)
		if errors.Is(err, ErrCodeTaken) {
			log.Warn("invite code collision, retrying")
			continue
		}
		return entry, err
	}
	return domain.InviteCode{}, fmt.Errorf("issue code: %w after %d attempts", ErrCodeTaken, issueAttempts)
}

// IssueNamedCode adds a code with a caller-chosen value.
func (s *EntitlementService) IssueNamedCode(ctx context.Context, code string, d domain.CodeDuration) (domain.InviteCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.InviteCode{}, ErrInvalidCode
	}
	if err := validateDuration(d); err != nil {
		return domain.InviteCode{}, err
	}

	now := s.now()
	entry := domain.InviteCode{
		Code:      code,
		CreatedAt: now,
		ExpiresAt: d.ExpiresAt(now),
	}
	if !d.Lifetime {
		days := d.Days
		entry.DurationDays = &days
	}

	if err := s.Store.InviteCodes().CreateInviteCode(ctx, entry); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.InviteCode{}, ErrCodeTaken
		}
		slogx.FromContext(ctx).Error("failed to store invite code", slog.Any("error", err))
		return domain.InviteCode{}, err
	}

	slogx.FromContext(ctx).Info("invite code issued",
		slog.String("code", code),
		slog.Bool("lifetime", d.Lifetime),
		slog.Int("days", d.Days),
	)
	return entry, nil
}

func validateDuration(d domain.CodeDuration) error {
	if !d.Lifetime && (d.Days < 1 || d.Days > domain.MaxCodeDays) {
		return ErrInvalidDuration
	}
	return nil
}

// Revoke deletes the code. Sessions already granted from it stay valid.
func (s *EntitlementService) Revoke(ctx context.Context, code string) error {
	if err := s.Store.InviteCodes().DeleteInviteCode(ctx, strings.TrimSpace(code)); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke invite code", slog.Any("error", err))
		return err
	}
	return nil
}

// ManualBind force-binds a code to identity regardless of its prior state.
func (s *EntitlementService) ManualBind(ctx context.Context, code, identity string) (domain.InviteCode, error) {
	identity = strings.TrimSpace(identity)
	if !strings.Contains(identity, "@") {
		return domain.InviteCode{}, ErrMalformedIdentity
	}
	code = strings.TrimSpace(code)

	var out domain.InviteCode
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.InviteCodes().BindInviteCode(ctx, code, identity); err != nil {
			return err
		}
		var err error
		out, err = tx.InviteCodes().GetInviteCode(ctx, code)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.InviteCode{}, ErrInvalidCode
	}
	if err != nil {
		return domain.InviteCode{}, err
	}

	slogx.FromContext(ctx).Info("invite code manually bound",
		slog.String("code", code),
		slog.String("identity", identity),
	)
	return out, nil
}

// Unbind returns a code to the unused state so the next redeemer claims it.
func (s *EntitlementService) Unbind(ctx context.Context, code string) error {
	err := s.Store.InviteCodes().UnbindInviteCode(ctx, strings.TrimSpace(code))
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCode
	}
	return err
}

func (s *EntitlementService) ListCodes(ctx context.Context) ([]domain.InviteCode, error) {
	return s.Store.InviteCodes().ListInviteCodes(ctx)
}

// SeedLedger adds lifetime codes, but only into an empty ledger.
func (s *EntitlementService) SeedLedger(ctx context.Context, codes []string) (int, error) {
	n, err := s.Store.InviteCodes().CountInviteCodes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	seeded := 0
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, err := s.IssueNamedCode(ctx, c, domain.LifetimeDuration()); err != nil {
			if errors.Is(err, ErrCodeTaken) {
				continue
			}
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

func isDomainRejection(err error) bool {
	return errors.Is(err, ErrInvalidCode) ||
		errors.Is(err, ErrCodeExpired) ||
		errors.Is(err, ErrCodeAlreadyBound)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrCodeExpired):
		return "code_expired"
	case errors.Is(err, ErrCodeAlreadyBound):
		return "already_bound"
	default:
		return "error"
	}
}
