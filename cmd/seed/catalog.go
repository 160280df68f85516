package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/service"
)

// catalogEntry one product as listed in a seed file. Stock is the total and is
// spread over Sizes.
type catalogEntry struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Color           string          `json:"color"`
	Sizes           []string        `json:"sizes"`
	Stock           int64           `json:"stock"`
	Images          []string        `json:"images"`
	IsLimited       bool            `json:"isLimited"`
	TotalMade       int64           `json:"totalMade"`
	ComingSoon      bool            `json:"comingSoon"`
	ReleaseDate     string          `json:"releaseDate"`
	ExclusiveAccess bool            `json:"exclusiveAccess"`
}

var defaultCatalog = []catalogEntry{
	{
		Name:        "Essential Black Tee - 100% Supima Cotton",
		Description: "Premium round neck tee crafted from 100% Supima Cotton. Individually numbered, only 50 pieces ever made.",
		Price:       decimal.NewFromInt(189),
		Color:       "Black",
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Stock:       2,
		IsLimited:   true,
		TotalMade:   50,
	},
	{
		Name:        "Essential White Tee - 100% Supima Cotton",
		Description: "The companion to our Essential Black, in pristine white Supima Cotton.",
		Price:       decimal.NewFromInt(189),
		Color:       "White",
		Sizes:       []string{"XS", "S", "M", "L"},
		Stock:       1,
		IsLimited:   true,
		TotalMade:   50,
	},
	{
		Name:        "Essential V-Neck Tee - 100% Supima Cotton",
		Description: "V-neck cut of the Essential tee in 100% Supima Cotton.",
		Price:       decimal.NewFromInt(189),
		Color:       "Black/White",
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Stock:       3,
	},
	{
		Name:            "YÈMALÍN Luxury Bag",
		Price:           decimal.NewFromInt(2890),
		Color:           "Signature",
		ComingSoon:      true,
		ReleaseDate:     "2026-04-01",
		TotalMade:       100,
		ExclusiveAccess: true,
	},
	{
		Name:        "YÈMALÍN Luxury Denim - Women's",
		Price:       decimal.NewFromInt(489),
		Color:       "Light Wash / Dark Wash",
		ComingSoon:  true,
		ReleaseDate: "2026-04-15",
		TotalMade:   200,
	},
	{
		Name:        "YÈMALÍN Luxury Denim - Men's",
		Price:       decimal.NewFromInt(489),
		Color:       "Dark Indigo",
		ComingSoon:  true,
		ReleaseDate: "2026-04-15",
		TotalMade:   200,
	},
}

func loadCatalog(path string) ([]catalogEntry, error) {
	if path == "" {
		return defaultCatalog, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []catalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// splitStock spreads total over sizes, the remainder going to the first sizes.
// A product without sizes gets a single "ONE SIZE" entry.
func splitStock(sizes []string, total int64) []domain.ProductSize {
	if len(sizes) == 0 {
		return []domain.ProductSize{{Size: "ONE SIZE", Stock: total}}
	}
	n := int64(len(sizes))
	out := make([]domain.ProductSize, len(sizes))
	for i, s := range sizes {
		out[i] = domain.ProductSize{Size: s, Stock: total / n}
		if int64(i) < total%n {
			out[i].Stock++
		}
	}
	return out
}

func (e catalogEntry) toNewProduct() (service.NewProduct, error) {
	active := !e.ComingSoon
	np := service.NewProduct{
		Name:            e.Name,
		Description:     e.Description,
		Price:           e.Price,
		Color:           e.Color,
		IsLimited:       e.IsLimited,
		TotalMade:       e.TotalMade,
		IsActive:        &active,
		IsComingSoon:    e.ComingSoon,
		ExclusiveAccess: e.ExclusiveAccess,
		Images:          e.Images,
		Sizes:           splitStock(e.Sizes, e.Stock),
	}
	if e.ReleaseDate != "" {
		t, err := time.Parse("2006-01-02", e.ReleaseDate)
		if err != nil {
			return np, fmt.Errorf("%s: release date: %w", e.Name, err)
		}
		np.ReleaseDate = &t
	}
	return np, nil
}
