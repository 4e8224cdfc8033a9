package model

// ChargeRequest describes a charge submitted to the payment gateway. Amount is in minor units.
type ChargeRequest struct {
	CustomerID     string
	Amount         int64
	Currency       string
	Description    string
	OrderID        int64
	UserID         int64
	IdempotencyKey string
}

// Charge is the gateway view of a charge.
type Charge struct {
	ID       string
	Amount   int64
	Currency string
	Paid     bool
	OrderID  int64
	UserID   int64
}

// GatewayEvent is a verified gateway webhook event.
type GatewayEvent struct {
	ID     string
	Type   string
	Charge *Charge
}

// Notification is an outgoing email.
type Notification struct {
	To      string
	Subject string
	Body    string
}
