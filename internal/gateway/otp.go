package gateway

import (
	"context"
	"net/http"
)

type otpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// otp posts an OTP request and turns success=false into a rejection.
func (c *Client) otp(ctx context.Context, op, path string, body map[string]string) error {
	var out otpResult
	if err := c.call(ctx, op, http.MethodPost, path, nil, body, &out); err != nil {
		return err
	}
	if !out.Success {
		return NewAPIError(ErrorRejected, op, messageOr(out.Message, "verification failed"), nil)
	}
	return nil
}

// SendTaxPINOTP issues a one-time code to the phone registered for the PIN.
func (c *Client) SendTaxPINOTP(ctx context.Context, pin string) error {
	return c.otp(ctx, "send_pin_otp", "/otp/pin/send", map[string]string{"pin": pin})
}

// VerifyTaxPINOTP checks a code issued by SendTaxPINOTP.
func (c *Client) VerifyTaxPINOTP(ctx context.Context, pin, code string) error {
	return c.otp(ctx, "verify_pin_otp", "/otp/pin/verify", map[string]string{"pin": pin, "code": code})
}

// SendPhoneOTP issues a one-time code to a phone number.
func (c *Client) SendPhoneOTP(ctx context.Context, phone string) error {
	return c.otp(ctx, "send_phone_otp", "/otp/phone/send", map[string]string{"phone": phone})
}

// VerifyPhoneOTP checks a code issued by SendPhoneOTP.
func (c *Client) VerifyPhoneOTP(ctx context.Context, phone, code string) error {
	return c.otp(ctx, "verify_phone_otp", "/otp/phone/verify", map[string]string{"phone": phone, "code": code})
}
