package domain

// Product is a catalog item a customer may ask about.
type Product struct {
	// ID is the numeric item number questions refer to.
	ID int64

	// SKU is the short alphanumeric catalog code.
	SKU string

	// Name is the display name.
	Name string

	// Brand is the brand or product series.
	Brand string

	// Category is the catalog category label.
	Category string

	// Price is the display price including unit, e.g. "$9.99/pair".
	Price string

	// Stock is the number of units on hand.
	Stock int

	// Rating is the average customer rating out of 5.
	Rating float64

	// Description is a short marketing description.
	Description string

	// Keywords are search terms that map to this product.
	Keywords []string

	// Alternatives are SKUs of substitute products.
	Alternatives []string

	// FrequentlyBoughtTogether are SKUs often purchased alongside this one.
	FrequentlyBoughtTogether []string
}

// StockLevel buckets stock into a coarse availability level.
type StockLevel string

// Stock levels.
const (
	StockHigh StockLevel = "high"
	StockLow  StockLevel = "low"
	StockOut  StockLevel = "critical"
)

// StockLevel returns the availability bucket for the product.
func (p Product) StockLevel() StockLevel {
	switch {
	case p.Stock > 100:
		return StockHigh
	case p.Stock > 20:
		return StockLow
	default:
		return StockOut
	}
}
