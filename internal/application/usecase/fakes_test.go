package usecase

import (
	"context"
	"io"
	"sync"

	"storefront/internal/domain/account"
)

type trackedEvent struct {
	name  string
	attrs map[string]string
}

type fakeTracker struct {
	mu     sync.Mutex
	events []trackedEvent
}

func (f *fakeTracker) Track(_ context.Context, name string, attrs map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, trackedEvent{name: name, attrs: attrs})
}

func (f *fakeTracker) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.name)
	}
	return out
}

type fakeIdentity struct {
	signUpFn  func(ctx context.Context, email, password string) (*account.Credential, error)
	signInFn  func(ctx context.Context, email, password string) (*account.Credential, error)
	signOutFn func(ctx context.Context, uid string) error
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password string) (*account.Credential, error) {
	return f.signUpFn(ctx, email, password)
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*account.Credential, error) {
	return f.signInFn(ctx, email, password)
}

func (f *fakeIdentity) SignOut(ctx context.Context, uid string) error {
	if f.signOutFn == nil {
		return nil
	}
	return f.signOutFn(ctx, uid)
}

type fakeProfiles struct {
	mergeFn func(ctx context.Context, uid, email string) error
}

func (f *fakeProfiles) MergeProfile(ctx context.Context, uid, email string) error {
	return f.mergeFn(ctx, uid, email)
}

type fakeMailer struct {
	sendFn func(ctx context.Context, to string) error
}

func (f *fakeMailer) SendWelcome(ctx context.Context, to string) error {
	return f.sendFn(ctx, to)
}

type fakeImageStore struct {
	putFn func(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

func (f *fakeImageStore) Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	return f.putFn(ctx, objectName, contentType, r)
}
