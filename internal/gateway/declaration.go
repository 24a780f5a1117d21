package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"travelgate/internal/declaration/models"
	id "travelgate/pkg/domain"
)

// InitializeDeclaration opens a declaration and returns its reference. An
// empty reference with a nil error means the API answered without one.
func (c *Client) InitializeDeclaration(ctx context.Context) (id.ReferenceNumber, error) {
	var out struct {
		ReferenceNumber string `json:"reference_number"`
	}
	body := map[string]string{"caller_id": c.callerID}
	if err := c.call(ctx, "initialize_declaration", http.MethodPost, "/declarations", nil, body, &out); err != nil {
		return "", err
	}
	return id.ReferenceNumber(strings.TrimSpace(out.ReferenceNumber)), nil
}

// GetDeclaration fetches the remote snapshot.
func (c *Client) GetDeclaration(ctx context.Context, ref id.ReferenceNumber) (*models.Snapshot, error) {
	var out models.Snapshot
	if err := c.call(ctx, "get_declaration", http.MethodGet, "/declarations/"+url.PathEscape(ref.String()), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitPassengerInfo sends the passenger step.
func (c *Client) SubmitPassengerInfo(ctx context.Context, payload models.PassengerSubmission) error {
	path := "/declarations/" + url.PathEscape(payload.ReferenceNumber.String()) + "/passenger"
	return c.call(ctx, "submit_passenger_info", http.MethodPut, path, nil, payload, nil)
}

// SubmitTravelInfo sends the travel step.
func (c *Client) SubmitTravelInfo(ctx context.Context, payload models.TravelSubmission) error {
	path := "/declarations/" + url.PathEscape(payload.ReferenceNumber.String()) + "/travel"
	return c.call(ctx, "submit_travel_info", http.MethodPut, path, nil, payload, nil)
}

// SubmitItems sends the flattened items and returns the computed assessments.
func (c *Client) SubmitItems(ctx context.Context, payload models.ItemsSubmission) ([]models.AssessmentLine, error) {
	var out struct {
		Assessments []models.AssessmentLine `json:"assessments"`
	}
	path := "/declarations/" + url.PathEscape(payload.ReferenceNumber.String()) + "/items"
	if err := c.call(ctx, "submit_items", http.MethodPost, path, nil, payload, &out); err != nil {
		return nil, err
	}
	return out.Assessments, nil
}

// FinalizeDeclaration closes the declaration and requests a checkout.
func (c *Client) FinalizeDeclaration(ctx context.Context, ref id.ReferenceNumber, callbackURL string) (models.FinalizeResult, error) {
	var out models.FinalizeResult
	body := map[string]string{"reference_number": ref.String()}
	if callbackURL != "" {
		body["callback_url"] = callbackURL
	}
	path := "/declarations/" + url.PathEscape(ref.String()) + "/finalize"
	if err := c.call(ctx, "finalize_declaration", http.MethodPost, path, nil, body, &out); err != nil {
		return models.FinalizeResult{}, err
	}
	out.CheckoutURL = strings.TrimSpace(out.CheckoutURL)
	out.InvoiceNumber = strings.TrimSpace(out.InvoiceNumber)
	return out, nil
}
