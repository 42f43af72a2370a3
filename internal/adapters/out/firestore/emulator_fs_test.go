package firestore

import (
	"context"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cart"
	catalogdom "storefront/internal/domain/catalog"
)

// FIRESTORE_EMULATOR_HOST が設定されている場合だけ実行する。
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("firestore.NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEmulatorCartRoundTrip(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewCartRepositoryFS(client)
	ctx := context.Background()
	uid := "u-" + uuid.NewString()

	err := repo.WithTx(ctx, func(ctx context.Context) error {
		cur, err := repo.GetCartItem(ctx, uid, "Fan")
		if err != nil {
			return err
		}
		return repo.MergeCartItem(ctx, uid, cartdom.CartItem{Name: "Fan", Price: 10, Qty: cartdom.NextQty(cur)})
	})
	if err != nil {
		t.Fatal(err)
	}

	it, err := repo.GetCartItem(ctx, uid, "Fan")
	if err != nil {
		t.Fatal(err)
	}
	if it == nil || it.Qty != 1 || it.UpdatedAt.IsZero() {
		t.Fatalf("got %+v", it)
	}

	if err := repo.UpdateCartItemQty(ctx, uid, "Ghost", 2); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := repo.DeleteCartItem(ctx, uid, "Ghost"); err != nil {
		t.Fatalf("delete missing should succeed: %v", err)
	}
}

func TestEmulatorLatestProducts(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewCatalogRepositoryFS(client)
	ctx := context.Background()

	// 空のコレクションは代替パスへ
	if _, err := repo.ListLatestProducts(ctx, 6); !errors.Is(err, catalogdom.ErrLatestOrderingUnavailable) {
		t.Fatalf("expected ErrLatestOrderingUnavailable, got %v", err)
	}

	for _, n := range []string{"p1", "p2", "p3"} {
		if _, err := repo.CreateProduct(ctx, catalogdom.Product{Name: n, Category: "c"}); err != nil {
			t.Fatal(err)
		}
	}
	ps, err := repo.ListLatestProducts(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 || ps[0].Name != "p3" {
		t.Fatalf("got %+v", ps)
	}
}
