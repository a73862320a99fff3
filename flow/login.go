package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/domain"
)

// Login verifies credentials and issues access tokens.
type Login struct {
	store  domain.UserStorage
	hasher domain.Hasher
	tokens TokenIssuer
	log    *zap.Logger
}

func NewLogin(store domain.UserStorage, hasher domain.Hasher, tokens TokenIssuer, log *zap.Logger) *Login {
	if log == nil {
		log = zap.NewNop()
	}
	return &Login{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Authenticate looks up the user and verifies the password. An unknown
// username and a wrong password both return domain.ErrInvalidCredentials,
// so the response never reveals whether the account exists.
func (f *Login) Authenticate(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := f.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: lookup user: %w", err)
	}

	if !f.hasher.Compare(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := f.tokens.Issue(user.Username, 0)
	if err != nil {
		return nil, "", fmt.Errorf("login: issue token: %w", err)
	}

	return user, tok, nil
}
