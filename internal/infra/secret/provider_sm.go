// internal/infra/secret/provider_sm.go
package secret

import (
	"context"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/pkg/errors"
)

var ErrNotConfigured = errors.New("secret: secret manager not configured")

// accessor は *secretmanager.Client の AccessSecretVersion だけを使う。
type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

var _ accessor = (*secretmanager.Client)(nil)

// Provider は Secret Manager から文字列シークレットを読みます。
type Provider struct {
	sm        accessor
	projectID string
}

func NewProvider(sm *secretmanager.Client, projectID string) *Provider {
	if sm == nil {
		return &Provider{projectID: strings.TrimSpace(projectID)}
	}
	return &Provider{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Get は secretID の version（空なら latest）を返す。
// secretID が "projects/" で始まる場合はフルネームとして扱う。
func (p *Provider) Get(ctx context.Context, secretID, version string) (string, error) {
	if p == nil || p.sm == nil {
		return "", ErrNotConfigured
	}

	name, err := p.resourceName(secretID, version)
	if err != nil {
		return "", err
	}

	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.Wrapf(err, "secret: AccessSecretVersion failed (%s)", name)
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.Errorf("secret: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (p *Provider) resourceName(secretID, version string) (string, error) {
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("secret: secretID is empty")
	}
	if strings.HasPrefix(sid, "projects/") {
		if !strings.Contains(sid, "/versions/") {
			sid += "/versions/latest"
		}
		return sid, nil
	}
	if p.projectID == "" {
		return "", errors.New("secret: projectID is empty")
	}
	ver := strings.TrimSpace(version)
	if ver == "" {
		ver = "latest"
	}
	return "projects/" + p.projectID + "/secrets/" + sid + "/versions/" + ver, nil
}

// ResolveAPIKey は直接指定があればそれを、無ければ secretName を Secret Manager から読む。
func (p *Provider) ResolveAPIKey(ctx context.Context, direct, secretName string) (string, error) {
	if v := strings.TrimSpace(direct); v != "" {
		return v, nil
	}
	if strings.TrimSpace(secretName) == "" {
		return "", errors.New("secret: api key is not configured (set FIREBASE_API_KEY or FIREBASE_API_KEY_SECRET)")
	}
	return p.Get(ctx, secretName, "")
}
