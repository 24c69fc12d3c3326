package razorpay

// All amounts are in paise (minor currency units) as reported by the API.

const (
	PaymentCaptured = "captured"
	PaymentFailed   = "failed"
)

type Payment struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Captured  bool   `json:"captured"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	CreatedAt int64  `json:"created_at"`
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type Settlement struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Fees      int64  `json:"fees"`
	Tax       int64  `json:"tax"`
	UTR       string `json:"utr"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// ListOptions are the query parameters shared by all paginated list endpoints.
// From and To are Unix seconds; nil means unbounded and is omitted from the query.
type ListOptions struct {
	Count int
	Skip  int
	From  *int64
	To    *int64
}
