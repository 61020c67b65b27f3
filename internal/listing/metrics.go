package listing

import "github.com/amaralimoveis/vitrine/internal/model"

// PricePerArea returns price divided by area, or 0 when either is not
// positive. Callers treat 0 as "not displayable".
func PricePerArea(price, area float64) float64 {
	if price <= 0 || area <= 0 {
		return 0
	}
	return price / area
}

// Summary counts listings by status for the admin dashboard.
type Summary struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Negotiating int `json:"negotiating"`
	Sold        int `json:"sold"`
}

// Summarize counts listings by status. Unknown statuses count only
// towards the total.
func Summarize(listings []model.Listing) Summary {
	s := Summary{Total: len(listings)}
	for _, l := range listings {
		switch l.Status {
		case model.StatusAvailable:
			s.Available++
		case model.StatusNegotiating:
			s.Negotiating++
		case model.StatusSold:
			s.Sold++
		}
	}
	return s
}
