// internal/adapters/out/gcs/catalogImage_repository_gcs.go
package gcs

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
)

var ErrObjectExists = errors.New("catalog_image_gcs: object already exists")

// CatalogImageRepositoryGCS は管理者がアップロードするカテゴリ/商品画像を保存します。
// usecase.ImageStore の実装。
type CatalogImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string

	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewCatalogImageRepositoryGCS(client *storage.Client, bucket string) *CatalogImageRepositoryGCS {
	return &CatalogImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: defaultPublicBaseURL,
	}
}

// Put は objectName に画像を書き込み、公開 URL を返します。
// 同名オブジェクトがあれば上書きせず ErrObjectExists。
func (r *CatalogImageRepositoryGCS) Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("catalog_image_gcs: nil storage client")
	}
	if r.Bucket == "" {
		return "", errors.New("catalog_image_gcs: bucket is empty")
	}
	obj := sanitizeObjectPath(objectName)
	if obj == "" {
		return "", errors.New("catalog_image_gcs: object name is empty")
	}
	if body == nil {
		return "", errors.New("catalog_image_gcs: body is nil")
	}

	oh := r.Client.Bucket(r.Bucket).Object(obj).If(storage.Conditions{DoesNotExist: true})
	w := oh.NewWriter(ctx)
	w.ContentType = strings.TrimSpace(contentType)
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", errors.Wrapf(err, "catalog_image_gcs: write %s", obj)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 412 {
			return "", ErrObjectExists
		}
		return "", errors.Wrapf(err, "catalog_image_gcs: close %s", obj)
	}

	return publicURL(r.PublicBaseURL, r.Bucket, obj), nil
}
