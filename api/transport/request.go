package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PaymentSubmitRequest struct {
	UserID          string  `json:"user_id"`
	ItemID          string  `json:"item_id"`
	Amount          float64 `json:"amount"`
	TillNumber      string  `json:"till_number"`
	TransactionCode string  `json:"transaction_code"`
	Kind            string  `json:"kind"`
}

// Decision bodies use pointers so a missing flag is distinguishable from an
// explicit false.
type DecideRequest struct {
	Verified *bool `json:"verified"`
}

type ActivateRequest struct {
	Active *bool `json:"active"`
}

type ApproveRequest struct {
	Approved *bool `json:"approved"`
}
