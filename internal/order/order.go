// Package order defines the request-scoped Order type shared across the
// orchestrator and the checker services, plus its JSON wire shape.
package order

// Item is a single line item in an order.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// User carries the customer-facing fields validated by the transaction checker.
type User struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	// Type defaults to "regular"; "premium" receives a priority boost in the queue.
	Type string `json:"type,omitempty"`
}

// CreditCard carries the payment fields; the transaction checker checks the
// card number's format, and the fraud checker never sees the card.
type CreditCard struct {
	Number         string `json:"number"`
	ExpirationDate string `json:"expirationDate"`
	CVV            string `json:"cvv"`
}

// Address is the billing address; only Street is modelled, and no checker
// validates it.
type Address struct {
	Street string `json:"street"`
}

// Order is the client-submitted checkout request. OrderID is the primary
// key shared across every service in the pipeline.
type Order struct {
	OrderID        string     `json:"order_id"`
	UserID         string     `json:"user_id"`
	Amount         float64    `json:"amount"`
	PaymentMethod  string     `json:"payment_method"`
	User           User       `json:"user"`
	Items          []Item     `json:"items"`
	CreditCard     CreditCard `json:"creditCard"`
	BillingAddress Address    `json:"billingAddress"`
	ShippingMethod string     `json:"shippingMethod"`
	TermsAccepted  bool       `json:"termsAccepted"`

	// Additional fields accepted but not required; they are passed through
	// untouched and do not affect the queue priority.
	UserComment  string `json:"userComment,omitempty"`
	GiftWrapping bool   `json:"giftWrapping,omitempty"`
}

// UserType returns the effective user type, defaulting to "regular".
func (o Order) UserType() string {
	if o.User.Type == "" {
		return "regular"
	}
	return o.User.Type
}

// ItemCount returns the number of line items (not total quantity).
func (o Order) ItemCount() int {
	return len(o.Items)
}

// BookNames returns the purchased item names, used for the suggestions lookup.
func (o Order) BookNames() []string {
	names := make([]string, len(o.Items))
	for i, it := range o.Items {
		names[i] = it.Name
	}
	return names
}
