package models

// Product represents an orderable item from the store catalog.
// Fetched once per shift and held read-only for the duration of the
// shift; the wire field names match the store API.
type Product struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	SecondsForOrder int     `json:"seconds_for_order"`
}

// Valid reports whether the product is usable by the shift engine.
// Products with negative timing or pricing are dropped at the catalog
// boundary so the scheduler never has to re-check them.
func (p Product) Valid() bool {
	return p.Name != "" && p.SecondsForOrder >= 0 && p.Price >= 0
}
