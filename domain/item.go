package domain

import "time"

// Product kinds a listing may carry.
const (
	KindDigital  = "digital"
	KindPhysical = "physical"
	KindService  = "service"
)

// Item represents a seller listing. It becomes visible to buyers only once
// active, and active implies the listing fee has been paid.
type Item struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Kind        string    `json:"kind"`
	FilePath    string    `json:"file_path,omitempty"`
	ImagePath   string    `json:"image_path,omitempty"`
	Paid        bool      `json:"paid"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Item) IsActive() bool {
	return i != nil && i.Active
}

// ValidKind reports whether a product kind is recognised.
func ValidKind(kind string) bool {
	switch kind {
	case KindDigital, KindPhysical, KindService:
		return true
	}
	return false
}
