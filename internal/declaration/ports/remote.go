package ports

import (
	"context"

	"travelgate/internal/declaration/models"
	id "travelgate/pkg/domain"
)

// DeclarationAPI is the remote declaration collaborator. Errors are expected
// to carry a gateway category so callers can tell a business rejection from
// a transport failure.
type DeclarationAPI interface {
	// InitializeDeclaration opens a declaration. An empty reference with a nil
	// error means the API answered without issuing one.
	InitializeDeclaration(ctx context.Context) (id.ReferenceNumber, error)

	// GetDeclaration fetches the remote snapshot for a reference.
	GetDeclaration(ctx context.Context, ref id.ReferenceNumber) (*models.Snapshot, error)

	SubmitPassengerInfo(ctx context.Context, payload models.PassengerSubmission) error
	SubmitTravelInfo(ctx context.Context, payload models.TravelSubmission) error

	// SubmitItems sends the flattened items and returns computed assessments.
	SubmitItems(ctx context.Context, payload models.ItemsSubmission) ([]models.AssessmentLine, error)

	// FinalizeDeclaration closes the declaration and requests a checkout.
	FinalizeDeclaration(ctx context.Context, ref id.ReferenceNumber, callbackURL string) (models.FinalizeResult, error)
}

// TaxPINVerifier issues and checks one-time codes for a tax PIN.
type TaxPINVerifier interface {
	SendTaxPINOTP(ctx context.Context, pin string) error
	VerifyTaxPINOTP(ctx context.Context, pin, code string) error
}
