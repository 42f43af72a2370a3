package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
	catalogdom "storefront/internal/domain/catalog"
)

var errNotAdmin = errors.New("seed: signed-in user is not the admin")

type catalogFile struct {
	Categories []catalogdom.CategoryInput `json:"categories"`
	Products   []catalogdom.ProductInput  `json:"products"`
}

type result struct {
	Added   int
	Skipped int
}

func readCatalog(path string) (catalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalogFile{}, errors.Wrap(err, "seed: open")
	}
	defer f.Close()

	var out catalogFile
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return catalogFile{}, errors.Wrapf(err, "seed: decode %s", path)
	}
	return out, nil
}

type seeder struct {
	auth    *usecase.AuthUsecase
	catalog *usecase.CatalogUsecase
	log     logrus.FieldLogger
}

// run は管理者でサインインしてからカテゴリ → 商品の順に投入します。
// 必須項目欠落で何もしなかったものは Skipped に数える。
func (s *seeder) run(ctx context.Context, email, password string, data catalogFile) (cats, prods result, err error) {
	unsubscribe := s.auth.Observe(func(u *account.User) {
		if u != nil {
			s.log.WithField("uid", u.UID).Info("[seed] signed in")
		}
	})
	defer unsubscribe()

	cred, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return cats, prods, errors.Wrap(err, "seed: login")
	}
	defer func() { _ = s.auth.Logout(ctx) }()

	if !s.auth.IsAdmin(&cred.User) {
		return cats, prods, errNotAdmin
	}

	for i := range data.Categories {
		id, err := s.catalog.AddCategory(ctx, &data.Categories[i])
		if err != nil {
			return cats, prods, errors.Wrapf(err, "seed: category %d", i)
		}
		if id == "" {
			cats.Skipped++
			continue
		}
		cats.Added++
	}

	for i := range data.Products {
		id, err := s.catalog.AddProduct(ctx, &data.Products[i])
		if err != nil {
			return cats, prods, errors.Wrapf(err, "seed: product %d", i)
		}
		if id == "" {
			prods.Skipped++
			s.log.WithField("index", i).Warn("[seed] product skipped (name/category missing)")
			continue
		}
		prods.Added++
	}
	return cats, prods, nil
}
