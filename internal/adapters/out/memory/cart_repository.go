package memory

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cart"
)

func (s *Store) cartOf(uid string) *docSet[cartdom.CartItem] {
	d, ok := s.st.carts[uid]
	if !ok {
		d = newDocSet[cartdom.CartItem]()
		s.st.carts[uid] = d
	}
	return d
}

func (s *Store) wishlistOf(uid string) *docSet[cartdom.WishlistItem] {
	d, ok := s.st.wishlists[uid]
	if !ok {
		d = newDocSet[cartdom.WishlistItem]()
		s.st.wishlists[uid] = d
	}
	return d
}

// ============================================================
// cart
// ============================================================

func (s *Store) GetCartItem(ctx context.Context, uid, name string) (*cartdom.CartItem, error) {
	unlock := s.lock(ctx)
	defer unlock()

	it, ok := s.cartOf(uid).get(name)
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *Store) MergeCartItem(ctx context.Context, uid string, item cartdom.CartItem) error {
	unlock := s.lock(ctx)
	defer unlock()

	item.ID = item.Name
	item.UpdatedAt = s.serverTime()
	s.cartOf(uid).put(item.Name, item)
	return nil
}

// UpdateCartItemQty は Firestore の Update と同じく、存在しなければ NotFound。
func (s *Store) UpdateCartItemQty(ctx context.Context, uid, name string, qty int) error {
	unlock := s.lock(ctx)
	defer unlock()

	d := s.cartOf(uid)
	it, ok := d.get(name)
	if !ok {
		return status.Errorf(codes.NotFound, "no document to update: users/%s/cart/%s", uid, name)
	}
	it.Qty = qty
	it.UpdatedAt = s.serverTime()
	d.put(name, it)
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, uid, name string) error {
	unlock := s.lock(ctx)
	defer unlock()

	s.cartOf(uid).remove(name)
	return nil
}

func (s *Store) ListCart(ctx context.Context, uid string) ([]cartdom.CartItem, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return s.cartOf(uid).list(), nil
}

// ============================================================
// wishlist
// ============================================================

func (s *Store) GetWishlistItem(ctx context.Context, uid, name string) (*cartdom.WishlistItem, error) {
	unlock := s.lock(ctx)
	defer unlock()

	it, ok := s.wishlistOf(uid).get(name)
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// MergeWishlistItem: 再追加でも createdAt は書き込み時刻で上書きされる。
func (s *Store) MergeWishlistItem(ctx context.Context, uid string, item cartdom.WishlistItem) error {
	unlock := s.lock(ctx)
	defer unlock()

	item.ID = item.Name
	item.CreatedAt = s.serverTime()
	s.wishlistOf(uid).put(item.Name, item)
	return nil
}

func (s *Store) DeleteWishlistItem(ctx context.Context, uid, name string) error {
	unlock := s.lock(ctx)
	defer unlock()

	s.wishlistOf(uid).remove(name)
	return nil
}

func (s *Store) ListWishlist(ctx context.Context, uid string) ([]cartdom.WishlistItem, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return s.wishlistOf(uid).list(), nil
}
