package models

import "time"

const (
	CategorySeed      = "seed"
	CategorySeedling  = "seedling"
	CategoryMachinery = "machinery"
	CategoryWorker    = "worker"
)

// Product is the base catalog record. Variant columns are pointers and only
// populated for the matching category (single-table layout, category is the tag).
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	NumReviews    int     `json:"num_reviews"`
	StockQuantity int     `json:"stock_quantity"`
	IsAvailable   bool    `json:"is_available"`

	// seed
	Unit         *string `json:"unit,omitempty"`
	SeedType     *string `json:"seed_type,omitempty"`
	GrowthTime   *string `json:"growth_time,omitempty"`
	SowingSeason *string `json:"sowing_season,omitempty"`

	// seedling
	SeedlingType *string  `json:"seedling_type,omitempty"`
	Age          *string  `json:"age,omitempty"`
	HeightCm     *float64 `json:"height_cm,omitempty"`

	// machinery
	RentingPrice      *float64 `json:"renting_price,omitempty"`
	SellingPrice      *float64 `json:"selling_price,omitempty"`
	MachineryType     *string  `json:"machinery_type,omitempty"`
	Manufacturer      *string  `json:"manufacturer,omitempty"`
	Model             *string  `json:"model,omitempty"`
	YearOfManufacture *int     `json:"year_of_manufacture,omitempty"`

	// worker
	Wage           *float64 `json:"wage,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
	Experience     *string  `json:"experience,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductReview struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment string  `json:"comment"`
}
