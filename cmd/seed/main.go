package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type sampleProduct struct {
	name        string
	description string
	category    string
	price       string
	stock       int64
}

var catalogue = []sampleProduct{
	{name: "Smartphone X", description: "Latest smartphone with advanced features", category: "Electronics", price: "999.99", stock: 10},
	{name: "Laptop Pro", description: "High-performance laptop for professionals", category: "Electronics", price: "1499.99", stock: 5},
	{name: "Running Shoes", description: "Comfortable running shoes for athletes", category: "Sports", price: "79.99", stock: 20},
	{name: "Coffee Maker", description: "Automatic coffee maker with timer", category: "Home", price: "49.99", stock: 15},
}

const placeholderImage = "https://via.placeholder.com/300"

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Bootstrap("seed"))

	_ = godotenv.Load()

	fake := flag.Int("fake", 0, "number of additional random products")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	storeCurrency, err := cfg.Store.Unit()
	if err != nil {
		logg.Error(ctx, "invalid store currency", err)
		os.Exit(1)
	}

	pool, err := repository.NewPool(ctx, cfg.DB)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalog, err := repository.NewCatalog(pool)
	if err != nil {
		logg.Error(ctx, "failed to create catalog repository", err)
		os.Exit(1)
	}

	created, err := seed(ctx, catalog, storeCurrency, *fake)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "products", created), "seed completed")
}

func seed(ctx context.Context, catalog port.CatalogRepository, cur currency.Unit, fake int) (int, error) {
	products := make([]domain.Product, 0, len(catalogue)+fake)

	for _, p := range catalogue {
		products = append(products, domain.Product{
			Name:        p.name,
			Description: p.description,
			Category:    p.category,
			ImageURL:    placeholderImage,
			Price:       domain.NewMoney(decimal.RequireFromString(p.price), cur),
			StockCount:  p.stock,
		})
	}

	for range fake {
		products = append(products, domain.Product{
			Name:        gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Category:    gofakeit.ProductCategory(),
			ImageURL:    placeholderImage,
			Price:       domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 500)), cur),
			StockCount:  int64(gofakeit.IntRange(0, 50)),
		})
	}

	for i, product := range products {
		if _, err := catalog.CreateProduct(ctx, product); err != nil {
			return i, fmt.Errorf("catalog.CreateProduct[%s]: %w", product.Name, err)
		}
	}

	return len(products), nil
}
