package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/adapters/out/memory"
	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
	catalogdom "storefront/internal/domain/catalog"
	"storefront/internal/infra/logging"
)

func newTestSeeder(t *testing.T) (*seeder, *memory.Store, *memory.Identity) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	ident := memory.NewIdentityWithCost(bcrypt.MinCost)
	if err := ident.CreateUser(ctx, "admin-uid", "admin@example.com", "admin-pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := ident.SignUp(ctx, "shopper@example.com", "shopper-pw"); err != nil {
		t.Fatal(err)
	}

	admin := account.NewAdminPolicy("admin-uid")
	log := logging.Discard()
	return &seeder{
		auth:    usecase.NewAuthUsecase(usecase.AuthDeps{Identity: ident, Profiles: store, Admin: admin, Logger: log}),
		catalog: usecase.NewCatalogUsecase(usecase.CatalogDeps{Repo: store, Admin: admin, Logger: log}),
		log:     log,
	}, store, ident
}

func TestReadCatalogAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{
  "categories": [{"name": "Lighting"}, {"name": "Fans", "image": "fans.png"}, {}],
  "products": [
    {"name": "Tube", "category": "Lighting", "price": "250", "availableQty": 10},
    {"name": "Bulb"}
  ]
}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := readCatalog(path)
	if err != nil {
		t.Fatalf("readCatalog: %v", err)
	}

	s, store, _ := newTestSeeder(t)
	cats, prods, err := s.run(context.Background(), "admin@example.com", "admin-pw", data)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(result{Added: 2, Skipped: 1}, cats); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(result{Added: 1, Skipped: 1}, prods); diff != "" {
		t.Errorf("products (-want +got):\n%s", diff)
	}

	ps, _ := store.ListProducts(context.Background())
	if len(ps) != 1 || ps[0].Price != 250 || ps[0].AvailableQty != 10 {
		t.Fatalf("got %+v", ps)
	}
	if s.auth.CurrentUser() != nil {
		t.Fatalf("seeder should sign out when done")
	}
}

func TestSeedRefusesNonAdmin(t *testing.T) {
	s, store, _ := newTestSeeder(t)
	data := catalogFile{Categories: []catalogdom.CategoryInput{{Name: "Lighting"}}}

	_, _, err := s.run(context.Background(), "shopper@example.com", "shopper-pw", data)
	if err != errNotAdmin {
		t.Fatalf("expected errNotAdmin, got %v", err)
	}
	cs, _ := store.ListCategoriesByName(context.Background())
	if len(cs) != 0 {
		t.Fatalf("nothing should be written, got %v", cs)
	}
}

func TestSeedKeepsAdminBrowserSession(t *testing.T) {
	s, _, ident := newTestSeeder(t)
	ctx := context.Background()

	// 別端末でログイン済みの管理者
	browser, err := ident.SignIn(ctx, "admin@example.com", "admin-pw")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.run(ctx, "admin@example.com", "admin-pw", catalogFile{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	u, err := ident.VerifyIDToken(ctx, browser.IDToken)
	if err != nil {
		t.Fatalf("browser token should still verify: %v", err)
	}
	if u.UID != "admin-uid" {
		t.Fatalf("got %+v", u)
	}
}

func TestReadCatalogMissingFile(t *testing.T) {
	if _, err := readCatalog(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error")
	}
}
