package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

var (
	ErrSessionInvalid = errors.New("session is invalid")
	ErrSessionExpired = errors.New("session has expired")
)

// IssuedSession is a persisted session plus its bearer token.
type IssuedSession struct {
	Session     domain.Session
	AccessToken string
}

type SessionService struct {
	Store  store.Store
	Keys   *jwtx.KeyManager
	Issuer string
	Now    func() time.Time

	// OnEnd runs after a session is logged out, e.g. to stop its coordinator.
	OnEnd func(sessionID string)
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue persists sess and signs a token that expires with it.
func (s *SessionService) Issue(ctx context.Context, sess domain.Session) (IssuedSession, error) {
	log := slogx.FromContext(ctx)

	claims := jwtx.NewSessionClaims(sess.Identity, sess.ID, sess.IsAdmin, s.Issuer, sess.CreatedAt, sess.ExpiryDate)
	token, err := s.Keys.Signer().Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return IssuedSession{}, err
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to persist session", slog.Any("error", err))
		return IssuedSession{}, err
	}

	log.Info("session started",
		slog.String("session_id", sess.ID),
		slog.String("identity", sess.Identity),
		slog.Bool("admin", sess.IsAdmin),
		slog.Time("expires_at", sess.ExpiryDate),
	)
	return IssuedSession{Session: sess, AccessToken: token}, nil
}

// Authenticate verifies the token and that its session row still exists and
// has not expired.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.Keys.Verifier().Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, ErrSessionInvalid
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrSessionInvalid
		}
		return domain.Session{}, err
	}
	if sess.Identity != claims.Subject {
		return domain.Session{}, ErrSessionInvalid
	}
	if !sess.ValidAt(s.now()) {
		return domain.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Logout deletes the session row; the token stops working immediately.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.Store.Sessions().DeleteSession(ctx, sessionID); err != nil {
		slogx.FromContext(ctx).Error("failed to delete session", slog.Any("error", err))
		return err
	}
	if s.OnEnd != nil {
		s.OnEnd(sessionID)
	}
	slogx.FromContext(ctx).Info("session ended", slog.String("session_id", sessionID))
	return nil
}
