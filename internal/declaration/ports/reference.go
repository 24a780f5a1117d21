package ports

import (
	"context"

	refmodels "travelgate/internal/referencedata/models"
)

// HSCodeSearcher looks up harmonized system codes by free text.
type HSCodeSearcher interface {
	SearchHSCodes(ctx context.Context, query string, pageSize int) ([]refmodels.HSCode, error)
}
