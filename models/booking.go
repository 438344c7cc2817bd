package models

// CareerEnquiry is the snapshot of a draft sent to the upstream enquiry API
// when the user confirms the final step.
type CareerEnquiry struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Service      string `json:"service,omitempty"`
	Plan         string `json:"plan,omitempty"`
	SelectedDate string `json:"selectedDate"`
	SelectedTime string `json:"selectedTime"`
}

// BookingOrder is the server-origin order returned by the enquiry API. It is
// consumed immediately by the checkout gateway and not otherwise stored.
type BookingOrder struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

// CheckoutPrefill pre-populates the hosted checkout with the customer's details.
type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutConfig is the contract handed to the checkout gateway. Amount is in
// the gateway's smallest currency unit (order amount multiplied by 100).
type CheckoutConfig struct {
	Key         string          `json:"key"`
	OrderID     string          `json:"orderId"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     CheckoutPrefill `json:"prefill"`
}

// CheckoutError carries the gateway's diagnostic identifiers for a failed or
// rejected payment.
type CheckoutError struct {
	Code        string                `json:"code,omitempty"`
	Description string                `json:"description"`
	Reason      string                `json:"reason,omitempty"`
	Metadata    CheckoutErrorMetadata `json:"metadata"`
}

type CheckoutErrorMetadata struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// PaymentResult is the payload the gateway posts on its success callback.
// A present Error field means the payment failed in-band despite the callback
// firing on the nominal success path.
type PaymentResult struct {
	PaymentID string         `json:"paymentId,omitempty"`
	OrderID   string         `json:"orderId,omitempty"`
	Signature string         `json:"signature,omitempty"`
	Error     *CheckoutError `json:"error,omitempty"`
}

// PaymentFailedEvent is the payload of the gateway's explicit failure event.
type PaymentFailedEvent struct {
	Error CheckoutError `json:"error"`
}

// ConfirmationEmail is the best-effort confirmation mail request sent after a
// successful payment.
type ConfirmationEmail struct {
	UserEmail      string `json:"userEmail"`
	UserName       string `json:"userName"`
	CounselingType string `json:"counselingType"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentID      string `json:"paymentId"`
	SessionDate    string `json:"sessionDate"`
}
