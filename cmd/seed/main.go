// Command seed loads the product catalog into the database named by DATABASE_URL.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/schollz/progressbar/v3"

	"yemalin/internal/config"
	"yemalin/internal/repository"
	"yemalin/internal/service"
)

func main() {
	file := flag.String("file", "", "JSON catalog file (built-in catalog when empty)")
	flag.Parse()

	cfg, err := config.LoadStorage()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}
	entries, err := loadCatalog(*file)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	ctx := context.Background()
	db, err := repository.OpenSQL(cfg.DatabaseURL, cfg.SlowQueryThreshold)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := repository.NewSQLProducts(db)
	products := service.NewProductService(repo, db)
	existing, err := existingNames(ctx, repo)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}

	log.Printf("[INFO] seeding %d products", len(entries))
	bar := progressbar.Default(int64(len(entries)))
	created, skipped := 0, 0
	for _, e := range entries {
		if existing[e.Name] {
			skipped++
			_ = bar.Add(1)
			continue
		}
		np, err := e.toNewProduct()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if _, err := products.Create(ctx, np); err != nil {
			log.Fatalf("create %q: %v", e.Name, err)
		}
		created++
		_ = bar.Add(1)
	}
	log.Printf("[INFO] done: %d created, %d already present", created, skipped)
}

// existingNames covers the whole catalog, hidden products included, so a
// rerun never duplicates something an admin deactivated.
func existingNames(ctx context.Context, repo repository.ProductRepository) (map[string]bool, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(all))
	for _, p := range all {
		names[p.Name] = true
	}
	return names, nil
}
