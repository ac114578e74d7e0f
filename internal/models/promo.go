package models

// Promo is a promotional flyer entry. ImageURL points at an externally
// hosted image; the service never stores image bytes.
type Promo struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}
