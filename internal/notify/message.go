package notify

// Kind distinguishes notification templates.
type Kind string

const (
	KindCheckout  Kind = "checkout"
	KindPINIssued Kind = "pin_issued"
)

// Sensitive kinds carry a credential in Text. Operator channels mirror only
// their kind, reference and masked phone.
func (k Kind) Sensitive() bool {
	return k == KindPINIssued
}

// Message is one outbound notification.
type Message struct {
	Kind            Kind   `json:"kind"`
	Phone           string `json:"phone"`
	Text            string `json:"message"`
	CallbackURL     string `json:"callback_url,omitempty"`
	InvoiceNumber   string `json:"invoice_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}
