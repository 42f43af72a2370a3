// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"time"

	"storefront/internal/domain/common"
)

// PlaceholderImage はカテゴリ/商品の画像が未指定のときの既定値。
const PlaceholderImage = "https://via.placeholder.com/150"

// DefaultLatestProducts は FetchLatestProducts の既定件数。
const DefaultLatestProducts = 6

var (
	// ErrLatestOrderingUnavailable は createdAt 降順クエリが使えない場合に返す。
	// （インデックス未作成 / createdAt を持つドキュメントが無い 等）
	ErrLatestOrderingUnavailable = errors.New("catalog: latest ordering unavailable")
)

// Category は categories コレクションの 1 ドキュメント（docId は自動採番）。
type Category struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Image     string    `json:"image" firestore:"image"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Product は products コレクションの 1 ドキュメント。
// Category はカテゴリ名での参照（外部キー制約は無い）。
type Product struct {
	ID           string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name"`
	Description  string    `json:"description" firestore:"description"`
	Price        float64   `json:"price" firestore:"price"`
	AvailableQty int       `json:"availableQty" firestore:"availableQty"`
	Category     string    `json:"category" firestore:"category"`
	Image        string    `json:"image" firestore:"image"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

type CategoryInput struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type ProductInput struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        any    `json:"price,omitempty"`
	AvailableQty any    `json:"availableQty,omitempty"`
	Category     string `json:"category"`
	Image        string `json:"image,omitempty"`
}

// NewCategory は入力を既定値で埋めた Category を返します。
// 必須項目(name)が無ければ ok=false（呼び出し側は何もしない）。
func NewCategory(in *CategoryInput) (Category, bool) {
	if in == nil || in.Name == "" {
		return Category{}, false
	}
	return Category{
		Name:  in.Name,
		Image: common.StringOr(in.Image, PlaceholderImage),
	}, true
}

// NewProduct: name と category が必須。値はそのまま（trim しない）保存する。
func NewProduct(in *ProductInput) (Product, bool) {
	if in == nil || in.Name == "" || in.Category == "" {
		return Product{}, false
	}
	return Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        common.NonNegativeNumber(in.Price),
		AvailableQty: common.NonNegativeInt(in.AvailableQty),
		Category:     in.Category,
		Image:        common.StringOr(in.Image, PlaceholderImage),
	}, true
}

// LatestFallback は「最新 N 件」が取れないときの近似。
// バックエンドの返却順の末尾 n 件を逆順にして返す（作成順の保証は無い）。
func LatestFallback(all []Product, n int) []Product {
	if n <= 0 {
		n = DefaultLatestProducts
	}
	start := len(all) - n
	if start < 0 {
		start = 0
	}
	tail := all[start:]
	out := make([]Product, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}
