// cmd/seed_catalog/main.go
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront/internal/infra/config"
	"storefront/internal/infra/logging"
	"storefront/internal/platform/di"
)

func main() {
	ctx := context.Background()

	file := flag.String("file", "catalog.json", "path to catalog JSON ({categories:[...], products:[...]})")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	data, err := readCatalog(*file)
	if err != nil {
		log.WithError(err).Fatal("[seed] read catalog")
	}

	cont, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("[seed] di init failed")
	}
	defer func() { _ = cont.Close(ctx) }()

	s := &seeder{auth: cont.AuthUC, catalog: cont.CatalogUC, log: log}
	email := strings.TrimSpace(os.Getenv("SEED_EMAIL"))
	cats, prods, err := s.run(ctx, email, os.Getenv("SEED_PASSWORD"), data)
	if err != nil {
		log.WithError(err).Fatal("[seed] failed")
	}

	log.WithFields(logrus.Fields{
		"categoriesAdded":   cats.Added,
		"categoriesSkipped": cats.Skipped,
		"productsAdded":     prods.Added,
		"productsSkipped":   prods.Skipped,
	}).Info("[seed] catalog seeded")
}
