package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwellhq/inkwell/domain"
	"github.com/inkwellhq/inkwell/queue"
)

// mockStore is an in-memory UserStorage.
type mockStore struct {
	users  map[string]*domain.User
	nextID uint
}

func newMockStore() *mockStore {
	return &mockStore{users: make(map[string]*domain.User)}
}

func (s *mockStore) CreateUser(_ context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domain.ErrConflict
		}
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *mockStore) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// mockDispatcher captures enqueued jobs, optionally failing every call.
type mockDispatcher struct {
	jobs []queue.EmailJob
	err  error
}

func (d *mockDispatcher) EnqueueEmail(_ context.Context, job queue.EmailJob) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

// stubIssuer issues predictable tokens.
type stubIssuer struct {
	calls int
	err   error
}

func (i *stubIssuer) Issue(subject string, _ time.Duration) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.calls++
	return fmt.Sprintf("token-for-%s-%d", subject, i.calls), nil
}

var errDispatcherDown = errors.New("broker unreachable")
