package api

import (
	"time"

	"aqualeaf/internal/account"
	"aqualeaf/internal/audit"
	"aqualeaf/internal/auth"
	"aqualeaf/internal/config"
	"aqualeaf/internal/mailer"
	"aqualeaf/internal/model"
)

// Session cookie contract. Lifetime equals the token TTL; logout clears the
// cookie client-side, the token itself stays cryptographically valid until it
// expires.
const (
	sessionCookieName = "token"
	sessionCookiePath = "/"
)

// HTTPHandler serves the account-lifecycle API.
type HTTPHandler struct {
	cfg      config.Config
	repo     model.Repository
	accounts *account.Service
	audit    *audit.Recorder
	sessions *auth.Manager
}

// NewHTTPHandler wires the handler and its collaborators.
func NewHTTPHandler(cfg config.Config, repo model.Repository, mail mailer.Mailer) (*HTTPHandler, error) {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	sessions, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, ttl)
	if err != nil {
		return nil, err
	}

	recorder := audit.NewRecorder(repo)
	accounts := account.NewService(repo, recorder, mail, sessions, account.Options{
		BcryptCost:      cfg.BcryptCost,
		VerificationTTL: time.Duration(cfg.VerificationTokenTTLMinutes) * time.Minute,
		ResetTTL:        time.Duration(cfg.ResetTokenTTLMinutes) * time.Minute,
	})

	return &HTTPHandler{
		cfg:      cfg,
		repo:     repo,
		accounts: accounts,
		audit:    recorder,
		sessions: sessions,
	}, nil
}
