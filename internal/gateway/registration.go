package gateway

import (
	"context"
	"net/http"
	"strings"

	"travelgate/internal/registration/models"
)

// RegisterTaxPIN submits a PIN application and returns the issued PIN.
func (c *Client) RegisterTaxPIN(ctx context.Context, sub models.Submission) (models.Result, error) {
	var out models.Result
	if err := c.call(ctx, "register_tax_pin", http.MethodPost, "/registrations", nil, sub, &out); err != nil {
		return models.Result{}, err
	}
	out.PIN = strings.TrimSpace(out.PIN)
	if out.PIN == "" {
		return models.Result{}, NewAPIError(ErrorBadData, "register_tax_pin", "no PIN in response", nil)
	}
	return out, nil
}
