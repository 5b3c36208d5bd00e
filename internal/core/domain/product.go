package domain

import "time"

// DefaultAlertThreshold is applied when a product is created without one.
const DefaultAlertThreshold = 5

// Product is a stock item owned by one tenant.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Quantity       int       `json:"quantity"`
	Price          float64   `json:"price"`
	AlertThreshold int       `json:"alert_threshold"`
	Category       string    `json:"category,omitempty"`
	TenantSession  string    `json:"tenant_session"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LowStock reports whether the product sits at or below its own alert threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.AlertThreshold
}
