// cmd/seed/main.go: loads a small demo catalog through the service layer.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/config"
	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/infra"
	"github.com/Hemantbam/Catalog-management/internal/repository"
	"github.com/Hemantbam/Catalog-management/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	db, err := infra.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	categories := service.NewCategoryService(categoryRepo)
	products := service.NewProductService(productRepo, categoryRepo)
	attributes := service.NewAttributeService(repository.NewAttributeRepository(db), productRepo)

	ctx := context.Background()

	electronics, err := categories.AddCategory(ctx, "electronics")
	if apierror.IsKind(err, apierror.KindConflict) {
		electronics, err = categoryRepo.FindTopLevelByName(ctx, "electronics")
	}
	must(err, "electronics")

	phones, err := categories.AddSubCategory(ctx, electronics.ID, "phones")
	if apierror.IsKind(err, apierror.KindConflict) {
		phones, err = categoryRepo.FindChildByName(ctx, electronics.ID, "phones")
	}
	must(err, "phones")

	desc := "latest apple phone"
	iphone, err := products.AddProduct(ctx, phones.ID, dto.ProductRequest{
		Name:        "iphone16",
		Description: &desc,
		Price:       decimal.NewFromInt(999),
	})
	if apierror.IsKind(err, apierror.KindConflict) {
		iphone, err = productRepo.FindByNameInCategory(ctx, "iphone16", &phones.ID)
	}
	must(err, "iphone16")

	_, err = attributes.AddAttribute(ctx, iphone.ID, dto.AttributeRequest{Key: "color", Value: "black"})
	if !apierror.IsKind(err, apierror.KindConflict) {
		must(err, "color")
	}

	log.Info().
		Str("category", electronics.ID.String()).
		Str("subcategory", phones.ID.String()).
		Str("product", iphone.ID.String()).
		Msg("demo catalog seeded")
}

func must(err error, what string) {
	if err != nil {
		log.Fatal().Err(err).Str("item", what).Msg("seed failed")
	}
}
