package models

// FinalizeResult is the finalize call's answer. Both fields may be empty,
// in which case the declaration is complete with nothing to pay online.
type FinalizeResult struct {
	CheckoutURL   string `json:"checkout_url"`
	InvoiceNumber string `json:"invoice_number"`
}

// HasCheckout reports whether a payment link was issued.
func (r FinalizeResult) HasCheckout() bool {
	return r.CheckoutURL != ""
}
