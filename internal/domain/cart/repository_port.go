// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for per-user cart / wishlist items.
//
// Storage (Firestore):
//   - users/{uid}/cart/{productName}
//   - users/{uid}/wishlist/{productName}
//
// Not-found policy:
//   - Get* returns (nil, nil) when the document does not exist.
//   - UpdateCartItemQty returns the backend NotFound error unchanged.
//   - Delete* on a missing document is a no-op.
type Repository interface {
	GetCartItem(ctx context.Context, uid, name string) (*CartItem, error)
	// MergeCartItem は name/price/image/qty をマージし updatedAt をサーバー時刻で更新する。
	MergeCartItem(ctx context.Context, uid string, item CartItem) error
	UpdateCartItemQty(ctx context.Context, uid, name string, qty int) error
	DeleteCartItem(ctx context.Context, uid, name string) error
	ListCart(ctx context.Context, uid string) ([]CartItem, error)

	GetWishlistItem(ctx context.Context, uid, name string) (*WishlistItem, error)
	// MergeWishlistItem は name/price/image をマージし createdAt をサーバー時刻にする。
	MergeWishlistItem(ctx context.Context, uid string, item WishlistItem) error
	DeleteWishlistItem(ctx context.Context, uid, name string) error
	ListWishlist(ctx context.Context, uid string) ([]WishlistItem, error)

	// WithTx runs fn atomically. Reads inside fn must happen before writes.
	// fn may be retried by the implementation.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
