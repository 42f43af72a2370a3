// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
//   - users/{uid}/cart/{productName}
//   - users/{uid}/wishlist/{productName}
//
// docId は商品名（自動採番ではない）。
type CartRepositoryFS struct {
	Client *firestore.Client
}

var _ cartdom.Repository = (*CartRepositoryFS)(nil)

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) cartCol(uid string) *firestore.CollectionRef {
	return r.Client.Collection("users").Doc(uid).Collection("cart")
}

func (r *CartRepositoryFS) wishlistCol(uid string) *firestore.CollectionRef {
	return r.Client.Collection("users").Doc(uid).Collection("wishlist")
}

func (r *CartRepositoryFS) check(uid string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if strings.TrimSpace(uid) == "" {
		return errors.New("cart_repository_fs: uid is empty")
	}
	return nil
}

// WithTx executes fn within a Firestore transaction context.
// RunTransaction は競合時に fn を再実行する。
func (r *CartRepositoryFS) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil {
		return errors.New("cart_repository_fs: repository is nil")
	}
	return runInTx(ctx, r.Client, fn)
}

// ============================================================
// cart
// ============================================================

// GetCartItem returns (nil, nil) if not found.
func (r *CartRepositoryFS) GetCartItem(ctx context.Context, uid, name string) (*cartdom.CartItem, error) {
	if err := r.check(uid); err != nil {
		return nil, err
	}

	snap, err := getDoc(ctx, r.cartCol(uid).Doc(name))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cart_repository_fs: get cart item %q", name)
	}
	if snap == nil || !snap.Exists() {
		return nil, nil
	}

	it := decodeCartItem(snap)
	return &it, nil
}

func (r *CartRepositoryFS) MergeCartItem(ctx context.Context, uid string, item cartdom.CartItem) error {
	if err := r.check(uid); err != nil {
		return err
	}

	return setDoc(ctx, r.cartCol(uid).Doc(item.Name), map[string]any{
		"name":      item.Name,
		"price":     item.Price,
		"image":     item.Image,
		"qty":       item.Qty,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
}

// UpdateCartItemQty は Update を使うので、存在しないアイテムは NotFound のまま返る。
func (r *CartRepositoryFS) UpdateCartItemQty(ctx context.Context, uid, name string, qty int) error {
	if err := r.check(uid); err != nil {
		return err
	}

	return updateDoc(ctx, r.cartCol(uid).Doc(name), []firestore.Update{
		{Path: "qty", Value: qty},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
}

func (r *CartRepositoryFS) DeleteCartItem(ctx context.Context, uid, name string) error {
	if err := r.check(uid); err != nil {
		return err
	}
	return deleteDoc(ctx, r.cartCol(uid).Doc(name))
}

func (r *CartRepositoryFS) ListCart(ctx context.Context, uid string) ([]cartdom.CartItem, error) {
	if err := r.check(uid); err != nil {
		return nil, err
	}

	items, err := collectDocs(queryDocs(ctx, r.cartCol(uid).Query), decodeCartItem)
	if err != nil {
		return nil, errors.Wrap(err, "cart_repository_fs: list cart")
	}
	return items, nil
}

// ============================================================
// wishlist
// ============================================================

func (r *CartRepositoryFS) GetWishlistItem(ctx context.Context, uid, name string) (*cartdom.WishlistItem, error) {
	if err := r.check(uid); err != nil {
		return nil, err
	}

	snap, err := getDoc(ctx, r.wishlistCol(uid).Doc(name))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cart_repository_fs: get wishlist item %q", name)
	}
	if snap == nil || !snap.Exists() {
		return nil, nil
	}

	it := decodeWishlistItem(snap)
	return &it, nil
}

// MergeWishlistItem: 再追加でも createdAt は書き込み時刻になる。
func (r *CartRepositoryFS) MergeWishlistItem(ctx context.Context, uid string, item cartdom.WishlistItem) error {
	if err := r.check(uid); err != nil {
		return err
	}

	return setDoc(ctx, r.wishlistCol(uid).Doc(item.Name), map[string]any{
		"name":      item.Name,
		"price":     item.Price,
		"image":     item.Image,
		"createdAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
}

func (r *CartRepositoryFS) DeleteWishlistItem(ctx context.Context, uid, name string) error {
	if err := r.check(uid); err != nil {
		return err
	}
	return deleteDoc(ctx, r.wishlistCol(uid).Doc(name))
}

func (r *CartRepositoryFS) ListWishlist(ctx context.Context, uid string) ([]cartdom.WishlistItem, error) {
	if err := r.check(uid); err != nil {
		return nil, err
	}

	items, err := collectDocs(queryDocs(ctx, r.wishlistCol(uid).Query), decodeWishlistItem)
	if err != nil {
		return nil, errors.Wrap(err, "cart_repository_fs: list wishlist")
	}
	return items, nil
}

// -----------------------------------------
// decode
// -----------------------------------------

// 古いドキュメントでは price が文字列、qty が欠落していることがあるため
// DataTo ではなく snap.Data() から寛容に読む。
func decodeCartItem(snap *firestore.DocumentSnapshot) cartdom.CartItem {
	return cartItemFromMap(snap.Ref.ID, snap.Data())
}

func cartItemFromMap(id string, raw map[string]any) cartdom.CartItem {
	it := cartdom.CartItem{
		ID:    id,
		Name:  asString(raw["name"]),
		Price: asFloat(raw["price"]),
		Image: asString(raw["image"]),
		Qty:   asInt(raw["qty"]),
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		it.UpdatedAt = t
	}
	return it
}

func decodeWishlistItem(snap *firestore.DocumentSnapshot) cartdom.WishlistItem {
	return wishlistItemFromMap(snap.Ref.ID, snap.Data())
}

func wishlistItemFromMap(id string, raw map[string]any) cartdom.WishlistItem {
	it := cartdom.WishlistItem{
		ID:    id,
		Name:  asString(raw["name"]),
		Price: asFloat(raw["price"]),
		Image: asString(raw["image"]),
	}
	if t, ok := asTime(raw["createdAt"]); ok {
		it.CreatedAt = t
	}
	return it
}
