package model

import "time"

// Listing is a property record in the catalog.
type Listing struct {
	ID          string    `json:"id" bson:"_id"`
	ExternalRef string    `json:"external_ref" bson:"external_ref"`
	Title       string    `json:"title" bson:"title"`
	Category    string    `json:"category" bson:"category"`
	Status      string    `json:"status" bson:"status"`
	Location    Location  `json:"location" bson:"location"`
	TotalPrice  float64   `json:"total_price" bson:"total_price"`
	TotalArea   float64   `json:"total_area" bson:"total_area"`
	BuiltArea   float64   `json:"built_area" bson:"built_area"`
	Features    Features  `json:"features" bson:"features"`
	Description string    `json:"description" bson:"description"`
	Photos      []string  `json:"photos" bson:"photos"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Location is the street address of a listing.
type Location struct {
	PostalCode   string `json:"postal_code" bson:"postal_code"`
	Street       string `json:"street" bson:"street"`
	Number       string `json:"number" bson:"number"`
	Neighborhood string `json:"neighborhood" bson:"neighborhood"`
	City         string `json:"city" bson:"city"`
	Region       string `json:"region" bson:"region"`
	Complement   string `json:"complement" bson:"complement"`
}

// Features counts rooms and amenities.
type Features struct {
	Bedrooms       int `json:"bedrooms" bson:"bedrooms"`
	Suites         int `json:"suites" bson:"suites"`
	Bathrooms      int `json:"bathrooms" bson:"bathrooms"`
	Parking        int `json:"parking" bson:"parking"`
	LivingRooms    int `json:"living_rooms" bson:"living_rooms"`
	Kitchens       int `json:"kitchens" bson:"kitchens"`
	OutdoorKitchen int `json:"outdoor_kitchen" bson:"outdoor_kitchen"`
	Pool           int `json:"pool" bson:"pool"`
}

// Cover returns the first photo reference, or "" if there is none.
func (l *Listing) Cover() string {
	if len(l.Photos) == 0 {
		return ""
	}
	return l.Photos[0]
}

// Listing categories.
const (
	CategoryHouse     = "casa"
	CategoryApartment = "apartamento"
	CategoryLot       = "terreno"
	CategoryFarmSmall = "sitio"
	CategoryFarmLarge = "chacara"
)

// Listing statuses.
const (
	StatusAvailable   = "disponivel"
	StatusNegotiating = "negociacao"
	StatusSold        = "vendido"
)

// FilterAll is the selector value that disables a category or status filter.
const FilterAll = "todos"

// Option is a value/label pair for select inputs.
type Option struct {
	Value string
	Label string
}

// Categories lists the known categories in display order.
var Categories = []Option{
	{CategoryHouse, "Casa"},
	{CategoryApartment, "Apartamento"},
	{CategoryLot, "Terreno"},
	{CategoryFarmSmall, "Sítio"},
	{CategoryFarmLarge, "Chácara"},
}

// Statuses lists the known statuses in display order.
var Statuses = []Option{
	{StatusAvailable, "Disponível"},
	{StatusNegotiating, "Em negociação"},
	{StatusSold, "Vendido"},
}

// CategoryLabel returns the display label for a category, or the raw value
// when the category is unknown.
func CategoryLabel(category string) string {
	return label(Categories, category)
}

// StatusLabel returns the display label for a status, or the raw value
// when the status is unknown.
func StatusLabel(status string) string {
	return label(Statuses, status)
}

func label(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
