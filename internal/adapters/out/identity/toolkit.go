package identity

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// NewToolkitService は Web API Key で Identity Toolkit のクライアントを作る。
// opts はテストでエンドポイントを差し替えるためのもの。
func NewToolkitService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*identitytoolkit.Service, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("identity: firebase web api key is empty")
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, all...)
	if err != nil {
		return nil, errors.Wrap(err, "identity: identitytoolkit.NewService")
	}
	return svc, nil
}
