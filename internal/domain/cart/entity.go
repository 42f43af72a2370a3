// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/internal/domain/common"
)

var (
	ErrInvalidItemName = errors.New("cart: invalid item name")
)

// Firestore の docId 上限（バイト）
const maxItemNameBytes = 1500

// CartItem は users/{uid}/cart/{name} の 1 ドキュメント。
//   - docId = 商品名（自動採番ではない）。同じ商品の再追加は qty 更新になる。
//   - UpdatedAt はサーバー時刻（書き込み時は ServerTimestamp）
type CartItem struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Price     float64   `json:"price" firestore:"price"`
	Image     string    `json:"image" firestore:"image"`
	Qty       int       `json:"qty" firestore:"qty"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// WishlistItem は users/{uid}/wishlist/{name} の 1 ドキュメント。数量の概念は無い。
type WishlistItem struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Price     float64   `json:"price" firestore:"price"`
	Image     string    `json:"image" firestore:"image"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// ItemInput は追加リクエストの商品情報。
// Price は文字列/数値どちらでも受け、数値に寄せる（不正なら 0）。
type ItemInput struct {
	Name  string `json:"name"`
	Price any    `json:"price,omitempty"`
	Image string `json:"image,omitempty"`
}

// ValidateItemName は商品名が Firestore の docId として使えるかを検証します。
// 一人のユーザーのカート/ウィッシュリスト内で商品名は一意キー。
func ValidateItemName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return ErrInvalidItemName
	}
	if len(name) > maxItemNameBytes || !utf8.ValidString(name) {
		return ErrInvalidItemName
	}
	if name == "." || name == ".." {
		return ErrInvalidItemName
	}
	if len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return ErrInvalidItemName
	}
	return nil
}

// NextQty は既存アイテム（nil = 未登録）に 1 件追加したときの数量。
// 既存 qty が欠落/不正(<=0)なら 1 とみなしてから +1。
func NextQty(existing *CartItem) int {
	if existing == nil {
		return 1
	}
	q := existing.Qty
	if q <= 0 {
		q = 1
	}
	return q + 1
}

// NewCartItem は ItemInput から書き込み用の CartItem を作ります（UpdatedAt はサーバー側で付与）。
func NewCartItem(in ItemInput, qty int) (CartItem, error) {
	if err := ValidateItemName(in.Name); err != nil {
		return CartItem{}, err
	}
	return CartItem{
		ID:    in.Name,
		Name:  in.Name,
		Price: common.NonNegativeNumber(in.Price),
		Image: in.Image,
		Qty:   qty,
	}, nil
}

func NewWishlistItem(in ItemInput) (WishlistItem, error) {
	if err := ValidateItemName(in.Name); err != nil {
		return WishlistItem{}, err
	}
	return WishlistItem{
		ID:    in.Name,
		Name:  in.Name,
		Price: common.NonNegativeNumber(in.Price),
		Image: in.Image,
	}, nil
}

// AsInput はウィッシュリスト→カート移動時に再利用する入力値。
func (w WishlistItem) AsInput() ItemInput {
	name := w.Name
	if name == "" {
		name = w.ID
	}
	return ItemInput{Name: name, Price: w.Price, Image: w.Image}
}
