// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

package shopstyle

import (
	"strconv"

	"github.com/tomtom215/moodboard/internal/models"
)

type searchResponse struct {
	Products []apiProduct `json:"products"`
}

type named struct {
	Name string `json:"name"`
}

type apiImage struct {
	Sizes map[string]struct {
		URL string `json:"url"`
	} `json:"sizes"`
}

// apiProduct is the subset of a ShopStyle product the pipeline reads.
type apiProduct struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Brand      named    `json:"brand"`
	Price      float64  `json:"price"`
	SalePrice  *float64 `json:"salePrice"`
	Currency   string   `json:"currency"`
	Image      apiImage `json:"image"`
	ClickURL   string   `json:"clickUrl"`
	Retailer   named    `json:"retailer"`
	Categories []named  `json:"categories"`
	InStock    *bool    `json:"inStock"`
}

// formatProduct maps an API product onto the record the pipeline consumes.
// The sale price, when present and positive, becomes the price and the list
// price is kept as the original.
func formatProduct(p *apiProduct, query string) models.RawProduct {
	price := p.Price
	if p.SalePrice != nil && *p.SalePrice > 0 {
		price = *p.SalePrice
	}

	raw := models.RawProduct{
		ID:            "ss_" + strconv.FormatInt(p.ID, 10),
		Title:         p.Name,
		Brand:         p.Brand.Name,
		Price:         price,
		OriginalPrice: p.Price,
		Currency:      p.Currency,
		Retailer:      p.Retailer.Name,
		ImageURL:      p.Image.Sizes["Large"].URL,
		ProductURL:    p.ClickURL,
		SourceQuery:   query,
		Source:        Source,
		InStock:       true,
	}
	if len(p.Categories) > 0 {
		raw.RetailerCategory = p.Categories[0].Name
	}
	if p.InStock != nil {
		raw.InStock = *p.InStock
	}
	raw.Normalize()
	return raw
}
