package secret

import (
	"context"
	"errors"
	"testing"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

type fakeAccessor struct {
	fn func(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

func (f *fakeAccessor) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	return f.fn(ctx, req)
}

func TestGetBuildsResourceName(t *testing.T) {
	var got string
	p := &Provider{projectID: "proj", sm: &fakeAccessor{fn: func(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
		got = req.GetName()
		return &secretmanagerpb.AccessSecretVersionResponse{Payload: &secretmanagerpb.SecretPayload{Data: []byte(" key-123\n")}}, nil
	}}}
	ctx := context.Background()

	v, err := p.Get(ctx, "firebase-api-key", "")
	if err != nil {
		t.Fatal(err)
	}
	if v != "key-123" {
		t.Fatalf("got %q", v)
	}
	if got != "projects/proj/secrets/firebase-api-key/versions/latest" {
		t.Fatalf("got name %q", got)
	}

	if _, err := p.Get(ctx, "projects/other/secrets/x", ""); err != nil {
		t.Fatal(err)
	}
	if got != "projects/other/secrets/x/versions/latest" {
		t.Fatalf("got name %q", got)
	}
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()

	var nilProvider *Provider
	if _, err := nilProvider.Get(ctx, "x", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewProvider(nil, "proj").Get(ctx, "x", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	p := &Provider{sm: &fakeAccessor{fn: func(context.Context, *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
		return &secretmanagerpb.AccessSecretVersionResponse{}, nil
	}}}
	if _, err := p.Get(ctx, "x", ""); err == nil {
		t.Fatalf("expected error for empty project id")
	}
	p.projectID = "proj"
	if _, err := p.Get(ctx, "x", ""); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestResolveAPIKeyPrefersDirect(t *testing.T) {
	p := NewProvider(nil, "proj")
	v, err := p.ResolveAPIKey(context.Background(), " direct ", "ignored")
	if err != nil || v != "direct" {
		t.Fatalf("got %q %v", v, err)
	}
	if _, err := p.ResolveAPIKey(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error when nothing configured")
	}
}
