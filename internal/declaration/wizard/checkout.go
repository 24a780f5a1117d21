package wizard

import (
	"context"
	"fmt"

	"travelgate/internal/declaration/models"
	"travelgate/internal/gateway"
	"travelgate/internal/notify"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/requestcontext"
)

type PaymentMode string

const (
	PayNow   PaymentMode = "pay_now"
	PayLater PaymentMode = "pay_later"
)

const completedMessage = "Your declaration has been submitted successfully."

// Payment is what the user sees after finalizing. PayNow carries a redirect
// URL, PayLater the invoice number; without a checkout only Message is set.
type Payment struct {
	Mode          PaymentMode `json:"mode"`
	RedirectURL   string      `json:"redirect_url,omitempty"`
	InvoiceNumber string      `json:"invoice_number,omitempty"`
	Message       string      `json:"message"`
}

// Pay finalizes the declaration. A checkout link triggers a notification to
// the passenger's phone; its outcome never affects the result. Once finalized
// the stored result is replayed: the collaborator is not called again and no
// second notification goes out.
func (m *Machine) Pay(ctx context.Context, d *models.Declaration, mode PaymentMode) (Payment, error) {
	if mode != PayNow && mode != PayLater {
		return Payment{}, dErrors.New(dErrors.CodeInvalidInput, "unknown payment mode")
	}
	if d.Step != models.StepTaxComputation {
		return Payment{}, dErrors.New(dErrors.CodeConflict, "payment is only available after tax computation")
	}
	if !d.Form.HasReference() {
		return Payment{}, dErrors.New(dErrors.CodeInvariantViolation, "declaration has no reference number")
	}

	if d.Checkout != nil {
		return paymentFor(mode, *d.Checkout), nil
	}

	ref := d.Form.ReferenceNumber
	result, err := m.api.FinalizeDeclaration(ctx, ref, m.callbackURL)
	if err != nil {
		m.logger.WarnContext(ctx, "declaration finalize failed",
			"request_id", requestcontext.RequestID(ctx),
			"reference_number", ref.String(),
			"error", err,
		)
		return Payment{}, gateway.ToDomainError(err, "could not complete your declaration, please try again")
	}
	d.Checkout = &result

	if result.HasCheckout() {
		m.notifier.Notify(ctx, notify.Message{
			Kind:            notify.KindCheckout,
			Phone:           d.Form.Passenger.Phone,
			Text:            checkoutText(ref.String(), result),
			CallbackURL:     result.CheckoutURL,
			InvoiceNumber:   result.InvoiceNumber,
			ReferenceNumber: ref.String(),
		})
	}
	return paymentFor(mode, result), nil
}

func paymentFor(mode PaymentMode, result models.FinalizeResult) Payment {
	if !result.HasCheckout() {
		return Payment{Mode: mode, Message: completedMessage}
	}
	p := Payment{Mode: mode}
	switch mode {
	case PayNow:
		p.RedirectURL = result.CheckoutURL
		p.Message = "Redirecting to payment."
	case PayLater:
		p.InvoiceNumber = result.InvoiceNumber
		p.Message = fmt.Sprintf("Your invoice number is %s. Use it to pay later.", result.InvoiceNumber)
	}
	return p
}

func checkoutText(ref string, r models.FinalizeResult) string {
	if r.InvoiceNumber == "" {
		return fmt.Sprintf("Customs declaration %s is ready for payment: %s", ref, r.CheckoutURL)
	}
	return fmt.Sprintf("Customs declaration %s, invoice %s, is ready for payment: %s", ref, r.InvoiceNumber, r.CheckoutURL)
}
