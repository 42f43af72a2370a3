// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"

	"storefront/internal/domain/account"
	cartdom "storefront/internal/domain/cart"
)

// CartUsecase coordinates per-user cart / wishlist operations.
//
// 変更系は認証済みユーザー必須（nil なら ErrAuthRequired で何も書き込まない）。
// 参照系は未ログインなら空リストを返す。
type CartUsecase struct {
	repo    cartdom.Repository
	tracker EventTracker
}

func NewCartUsecase(repo cartdom.Repository, tracker EventTracker) *CartUsecase {
	return &CartUsecase{repo: repo, tracker: tracker}
}

// AddToCart は同名アイテムがあれば qty+1、無ければ qty=1 で保存します。
// 読み取りと書き込みは 1 トランザクション（同時追加でも加算が失われない）。
func (uc *CartUsecase) AddToCart(ctx context.Context, user *account.User, in cartdom.ItemInput) error {
	if !user.Authenticated() {
		return ErrAuthRequired
	}
	if err := cartdom.ValidateItemName(in.Name); err != nil {
		return err
	}

	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		return uc.incrementCartItem(ctx, user.UID, in)
	})
	if err != nil {
		return err
	}

	track(uc.tracker, ctx, "add_to_cart", map[string]string{"item_name": in.Name})
	return nil
}

func (uc *CartUsecase) incrementCartItem(ctx context.Context, uid string, in cartdom.ItemInput) error {
	existing, err := uc.repo.GetCartItem(ctx, uid, in.Name)
	if err != nil {
		return err
	}
	item, err := cartdom.NewCartItem(in, cartdom.NextQty(existing))
	if err != nil {
		return err
	}
	return uc.repo.MergeCartItem(ctx, uid, item)
}

func (uc *CartUsecase) AddToWishlist(ctx context.Context, user *account.User, in cartdom.ItemInput) error {
	if !user.Authenticated() {
		return ErrAuthRequired
	}
	item, err := cartdom.NewWishlistItem(in)
	if err != nil {
		return err
	}
	if err := uc.repo.MergeWishlistItem(ctx, user.UID, item); err != nil {
		return err
	}

	track(uc.tracker, ctx, "add_to_wishlist", map[string]string{"item_name": in.Name})
	return nil
}

// FetchCart: 未ログインなら空。順序は保証しない。
func (uc *CartUsecase) FetchCart(ctx context.Context, user *account.User) ([]cartdom.CartItem, error) {
	if !user.Authenticated() {
		return []cartdom.CartItem{}, nil
	}
	items, err := uc.repo.ListCart(ctx, user.UID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []cartdom.CartItem{}
	}
	return items, nil
}

func (uc *CartUsecase) FetchWishlist(ctx context.Context, user *account.User) ([]cartdom.WishlistItem, error) {
	if !user.Authenticated() {
		return []cartdom.WishlistItem{}, nil
	}
	items, err := uc.repo.ListWishlist(ctx, user.UID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []cartdom.WishlistItem{}
	}
	return items, nil
}

// UpdateCartQty: qty <= 0 は削除扱い。
// 存在しないアイテムの更新はバックエンドの NotFound をそのまま返す。
func (uc *CartUsecase) UpdateCartQty(ctx context.Context, user *account.User, name string, qty int) error {
	if !user.Authenticated() {
		return ErrAuthRequired
	}
	if err := cartdom.ValidateItemName(name); err != nil {
		return err
	}
	if qty <= 0 {
		return uc.repo.DeleteCartItem(ctx, user.UID, name)
	}
	return uc.repo.UpdateCartItemQty(ctx, user.UID, name, qty)
}

// RemoveCartItem は無条件に削除（存在しなくてもエラーにしない）。
func (uc *CartUsecase) RemoveCartItem(ctx context.Context, user *account.User, name string) error {
	if !user.Authenticated() {
		return ErrAuthRequired
	}
	if err := cartdom.ValidateItemName(name); err != nil {
		return err
	}
	if err := uc.repo.DeleteCartItem(ctx, user.UID, name); err != nil {
		return err
	}

	track(uc.tracker, ctx, "remove_from_cart", map[string]string{"item_name": name})
	return nil
}

// MoveWishlistItemToCart はウィッシュリストのアイテムをカートへ加算し、ウィッシュリストから削除します。
// 2 つの操作は同一トランザクションで行うため、片方だけ反映されることは無い。
// ウィッシュリストに無ければ何もしない。
func (uc *CartUsecase) MoveWishlistItemToCart(ctx context.Context, user *account.User, name string) error {
	if !user.Authenticated() {
		return ErrAuthRequired
	}
	if err := cartdom.ValidateItemName(name); err != nil {
		return err
	}

	moved := false
	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		moved = false
		w, err := uc.repo.GetWishlistItem(ctx, user.UID, name)
		if err != nil {
			return err
		}
		if w == nil {
			return nil
		}
		if err := uc.incrementCartItem(ctx, user.UID, w.AsInput()); err != nil {
			return err
		}
		if err := uc.repo.DeleteWishlistItem(ctx, user.UID, name); err != nil {
			return err
		}
		moved = true
		return nil
	})
	if err != nil {
		return err
	}

	if moved {
		track(uc.tracker, ctx, "add_to_cart", map[string]string{"item_name": name, "source": "wishlist"})
	}
	return nil
}
