package models

import "time"

// Review is embedded in a product; one review per user per product.
type Review struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Rating    int       `json:"rating" bson:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Product struct {
	ProductID     string    `json:"productid" bson:"productid"`
	SKU           string    `json:"sku" bson:"sku"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	SalePrice     float64   `json:"sale_price,omitempty" bson:"sale_price,omitempty"`
	Category      string    `json:"category" bson:"category"`
	Stock         int       `json:"stock" bson:"stock"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	IsFeatured    bool      `json:"is_featured" bson:"is_featured"`
	OnSale        bool      `json:"on_sale" bson:"on_sale"`
	Images        []string  `json:"images,omitempty" bson:"images,omitempty"`
	Reviews       []Review  `json:"reviews" bson:"reviews"`
	AverageRating float64   `json:"average_rating" bson:"average_rating"`
	ReviewCount   int       `json:"review_count" bson:"review_count"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

var ProductCategories = map[string]bool{
	"kitchen":       true,
	"personal-care": true,
	"home":          true,
	"garden":        true,
	"clothing":      true,
	"electronics":   true,
	"food":          true,
}

// RecomputeRating resets AverageRating and ReviewCount from the review list.
// Must be called before every save that touches Reviews.
func (p *Product) RecomputeRating() {
	p.ReviewCount = len(p.Reviews)
	if p.ReviewCount == 0 {
		p.AverageRating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.AverageRating = float64(sum) / float64(p.ReviewCount)
}

// EffectivePrice is the price an order snapshot uses: the sale price when the
// product is on sale and a sale price is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
