// Package flow implements the registration and login flows on top of the
// credential store, the password hasher, the token service, and the job
// queue dispatcher.
package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/domain"
	"github.com/inkwellhq/inkwell/queue"
)

// TokenIssuer issues a signed bearer token for a subject. ttl <= 0 means
// the issuer's default lifetime.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// RegisterInput is the payload for creating a credential record.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

func (in *RegisterInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return domain.NewValidationError("username", "is required")
	}
	if !strings.Contains(in.Email, "@") {
		return domain.NewValidationError("email", "must be a valid address")
	}
	if in.Password == "" {
		return domain.NewValidationError("password", "is required")
	}
	return nil
}

// Registration creates credential records and hands the confirmation email
// off to the queue.
type Registration struct {
	store      domain.UserStorage
	hasher     domain.Hasher
	tokens     TokenIssuer
	dispatcher queue.Dispatcher
	log        *zap.Logger
}

func NewRegistration(store domain.UserStorage, hasher domain.Hasher, tokens TokenIssuer, dispatcher queue.Dispatcher, log *zap.Logger) *Registration {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registration{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Register hashes the password, persists the credential, issues an access
// token, and enqueues the confirmation email. A duplicate username or
// email surfaces as domain.ErrConflict. The enqueue is best-effort:
// a dispatcher outage is logged and registration still succeeds.
func (f *Registration) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	hash, err := f.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("registration: hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		PhoneNumber:  in.PhoneNumber,
	}

	if err := f.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := f.tokens.Issue(user.Username, 0)
	if err != nil {
		return nil, "", fmt.Errorf("registration: issue token: %w", err)
	}

	if err := f.dispatcher.EnqueueEmail(ctx, queue.EmailJob{Email: user.Email, Token: tok}); err != nil {
		f.log.Warn("confirmation email enqueue failed",
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}

	return user, tok, nil
}
