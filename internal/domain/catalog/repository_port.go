// internal/domain/catalog/repository_port.go
package catalog

import "context"

// Repository is a persistence port for the global catalog.
//
// Storage (Firestore):
//   - categories/{autoId}: name, image, createdAt
//   - products/{autoId}:   name, description, price, availableQty, category, image, createdAt
//
// createdAt は実装側でサーバー時刻を付与する。
type Repository interface {
	CreateCategory(ctx context.Context, c Category) (string, error)
	// ListCategoriesByName は name 昇順。
	ListCategoriesByName(ctx context.Context) ([]Category, error)

	CreateProduct(ctx context.Context, p Product) (string, error)
	// ListLatestProducts は createdAt 降順で limit 件。
	// 並び替えできない場合は ErrLatestOrderingUnavailable。
	ListLatestProducts(ctx context.Context, limit int) ([]Product, error)
	// ListProducts はバックエンドの既定順で全件。
	ListProducts(ctx context.Context) ([]Product, error)
	// ListProductsByCategory は category == name の完全一致。
	ListProductsByCategory(ctx context.Context, category string) ([]Product, error)
}
