package wizard

import (
	"context"
	"strings"

	"travelgate/internal/declaration/models"
	"travelgate/internal/gateway"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/requestcontext"
)

// SendOTP issues a verification code for the passenger's tax PIN. Only the
// PIN length is checked locally. A failed send leaves the challenge as it was.
func (m *Machine) SendOTP(ctx context.Context, d *models.Declaration) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	f := d.Form
	if !f.RequiresOTP() {
		return dErrors.New(dErrors.CodeInvalidInput, "PIN verification applies to Kenyan citizens who entered a tax PIN")
	}
	if len(f.Passenger.TaxPIN) != models.TaxPINLength {
		return dErrors.NewValidation("tax PIN must be 11 characters", map[string]string{"tax_pin": "Invalid"})
	}

	now := requestcontext.Now(ctx)
	if otp := f.Passenger.OTP; otp.Sent && !otp.SentAt.IsZero() && now.Sub(otp.SentAt) < m.otpCooldown {
		return dErrors.New(dErrors.CodeRateLimited, "please wait before requesting another code")
	}

	if err := m.pins.SendTaxPINOTP(ctx, f.Passenger.TaxPIN); err != nil {
		m.logger.WarnContext(ctx, "tax PIN OTP send failed",
			"request_id", requestcontext.RequestID(ctx),
			"reference_number", f.ReferenceNumber.String(),
			"error", err,
		)
		return gateway.ToDomainError(err, "could not send a verification code, please try again")
	}
	f.MarkOTPSent(now)
	return nil
}

// VerifyOTP checks the code against the PIN the OTP was sent for.
func (m *Machine) VerifyOTP(ctx context.Context, d *models.Declaration, code string) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	f := d.Form
	if !f.RequiresOTP() {
		return dErrors.New(dErrors.CodeInvalidInput, "PIN verification applies to Kenyan citizens who entered a tax PIN")
	}
	if !f.Passenger.OTP.Sent {
		return dErrors.New(dErrors.CodeInvalidInput, "request a verification code first")
	}
	if f.Passenger.OTP.Verified {
		return nil
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return dErrors.NewValidation("verification code is required", map[string]string{"code": "Required"})
	}

	if err := m.pins.VerifyTaxPINOTP(ctx, f.Passenger.TaxPIN, code); err != nil {
		m.logger.WarnContext(ctx, "tax PIN OTP verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"reference_number", f.ReferenceNumber.String(),
			"error", err,
		)
		return gateway.ToDomainError(err, "could not verify the code, please try again")
	}
	f.MarkOTPVerified()
	return nil
}
