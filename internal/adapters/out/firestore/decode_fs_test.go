package firestore

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	cartdom "storefront/internal/domain/cart"
	catalogdom "storefront/internal/domain/catalog"
)

func TestCartItemFromMapLegacyShapes(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	got := cartItemFromMap("LED Bulb", map[string]any{
		"name":      "LED Bulb",
		"price":     "120.5",
		"image":     "bulb.png",
		"updatedAt": ts,
	})
	want := cartdom.CartItem{ID: "LED Bulb", Name: "LED Bulb", Price: 120.5, Image: "bulb.png", Qty: 0, UpdatedAt: ts}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// qty 欠落は 0 として読み、加算時に 1 扱いになる
	if cartdom.NextQty(&got) != 2 {
		t.Fatalf("missing qty should increment to 2")
	}
}

func TestProductFromMap(t *testing.T) {
	got := productFromMap("p1", map[string]any{
		"name":         "Fan",
		"price":        int64(1500),
		"availableQty": 3.7,
		"category":     "Fans",
		"image":        nil,
	})
	want := catalogdom.Product{ID: "p1", Name: "Fan", Price: 1500, AvailableQty: 3, Category: "Fans"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCategoryAndWishlistFromMap(t *testing.T) {
	c := categoryFromMap("c1", map[string]any{"name": "Lighting", "image": "x.png", "createdAt": "not-a-time"})
	if c.ID != "c1" || c.Name != "Lighting" || !c.CreatedAt.IsZero() {
		t.Fatalf("got %+v", c)
	}

	w := wishlistItemFromMap("Fan", map[string]any{"name": "Fan", "price": 99})
	if w.ID != "Fan" || w.Price != 99 {
		t.Fatalf("got %+v", w)
	}
}

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{nil, 0},
		{"7", 7},
		{"7.9", 7},
		{int64(3), 3},
		{"abc", 0},
		{1e12, maxInt32},
	}
	for _, tc := range cases {
		if got := asInt(tc.in); got != tc.want {
			t.Errorf("asInt(%#v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
