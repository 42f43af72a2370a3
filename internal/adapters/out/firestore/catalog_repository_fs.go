// internal/adapters/out/firestore/catalog_repository_fs.go
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogdom "storefront/internal/domain/catalog"
)

// CatalogRepositoryFS implements catalog.Repository using Firestore.
//
//   - categories/{autoId}: name, image, createdAt
//   - products/{autoId}:   name, description, price, availableQty, category, image, createdAt
type CatalogRepositoryFS struct {
	Client *firestore.Client
}

var _ catalogdom.Repository = (*CatalogRepositoryFS)(nil)

func NewCatalogRepositoryFS(client *firestore.Client) *CatalogRepositoryFS {
	return &CatalogRepositoryFS{Client: client}
}

func (r *CatalogRepositoryFS) categoriesCol() *firestore.CollectionRef {
	return r.Client.Collection("categories")
}

func (r *CatalogRepositoryFS) productsCol() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *CatalogRepositoryFS) check() error {
	if r == nil || r.Client == nil {
		return errors.New("catalog_repository_fs: firestore client is nil")
	}
	return nil
}

// ============================================================
// categories
// ============================================================

func (r *CatalogRepositoryFS) CreateCategory(ctx context.Context, c catalogdom.Category) (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}

	ref := r.categoriesCol().NewDoc()
	if _, err := ref.Create(ctx, map[string]any{
		"name":      c.Name,
		"image":     c.Image,
		"createdAt": firestore.ServerTimestamp,
	}); err != nil {
		return "", errors.Wrap(err, "catalog_repository_fs: create category")
	}
	return ref.ID, nil
}

func (r *CatalogRepositoryFS) ListCategoriesByName(ctx context.Context) ([]catalogdom.Category, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	q := r.categoriesCol().OrderBy("name", firestore.Asc)
	cs, err := collectDocs(q.Documents(ctx), decodeCategory)
	if err != nil {
		return nil, errors.Wrap(err, "catalog_repository_fs: list categories")
	}
	return cs, nil
}

// ============================================================
// products
// ============================================================

func (r *CatalogRepositoryFS) CreateProduct(ctx context.Context, p catalogdom.Product) (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}

	ref := r.productsCol().NewDoc()
	if _, err := ref.Create(ctx, map[string]any{
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"availableQty": p.AvailableQty,
		"category":     p.Category,
		"image":        p.Image,
		"createdAt":    firestore.ServerTimestamp,
	}); err != nil {
		return "", errors.Wrap(err, "catalog_repository_fs: create product")
	}
	return ref.ID, nil
}

// ListLatestProducts は createdAt 降順で limit 件。
//
// Firestore は orderBy 対象フィールドを持たないドキュメントを結果から黙って除外する。
// そのため次の場合は ErrLatestOrderingUnavailable を返し、呼び出し側の代替に任せる:
//   - インデックス未作成などでクエリが FailedPrecondition
//   - 結果が 0 件（createdAt を持つ商品が無い）
func (r *CatalogRepositoryFS) ListLatestProducts(ctx context.Context, limit int) ([]catalogdom.Product, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = catalogdom.DefaultLatestProducts
	}

	q := r.productsCol().OrderBy("createdAt", firestore.Desc).Limit(limit)
	ps, err := collectDocs(q.Documents(ctx), decodeProduct)
	if err != nil {
		if status.Code(err) == codes.FailedPrecondition {
			return nil, errors.Wrapf(catalogdom.ErrLatestOrderingUnavailable, "orderBy createdAt: %v", err)
		}
		return nil, errors.Wrap(err, "catalog_repository_fs: list latest products")
	}
	if len(ps) == 0 {
		return nil, catalogdom.ErrLatestOrderingUnavailable
	}
	return ps, nil
}

func (r *CatalogRepositoryFS) ListProducts(ctx context.Context) ([]catalogdom.Product, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	ps, err := collectDocs(r.productsCol().Documents(ctx), decodeProduct)
	if err != nil {
		return nil, errors.Wrap(err, "catalog_repository_fs: list products")
	}
	return ps, nil
}

func (r *CatalogRepositoryFS) ListProductsByCategory(ctx context.Context, category string) ([]catalogdom.Product, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	q := r.productsCol().Where("category", "==", category)
	ps, err := collectDocs(q.Documents(ctx), decodeProduct)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog_repository_fs: list products category=%q", category)
	}
	return ps, nil
}

// -----------------------------------------
// decode
// -----------------------------------------

func decodeCategory(snap *firestore.DocumentSnapshot) catalogdom.Category {
	return categoryFromMap(snap.Ref.ID, snap.Data())
}

func categoryFromMap(id string, raw map[string]any) catalogdom.Category {
	c := catalogdom.Category{
		ID:    id,
		Name:  asString(raw["name"]),
		Image: asString(raw["image"]),
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		c.CreatedAt = t
	}
	return c
}

func decodeProduct(snap *firestore.DocumentSnapshot) catalogdom.Product {
	return productFromMap(snap.Ref.ID, snap.Data())
}

func productFromMap(id string, raw map[string]any) catalogdom.Product {
	p := catalogdom.Product{
		ID:           id,
		Name:         asString(raw["name"]),
		Description:  asString(raw["description"]),
		Price:        asFloat(raw["price"]),
		AvailableQty: asInt(raw["availableQty"]),
		Category:     asString(raw["category"]),
		Image:        asString(raw["image"]),
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		p.CreatedAt = t
	}
	return p
}
