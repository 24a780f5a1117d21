package wizard

import (
	"context"
	"strings"
	"unicode/utf8"

	"travelgate/internal/gateway"
	refmodels "travelgate/internal/referencedata/models"
	dErrors "travelgate/pkg/domain-errors"
	"travelgate/pkg/requestcontext"
)

// CheckHSQuery trims query and rejects it when it is too short to search.
func CheckHSQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < HSSearchMinLength {
		return "", dErrors.NewValidation("enter at least 3 characters", map[string]string{"q": "Too short"})
	}
	return query, nil
}

// SearchHSCodes returns up to HSSearchPageSize candidates for the item modal.
func (m *Machine) SearchHSCodes(ctx context.Context, query string) ([]refmodels.HSCode, error) {
	query, err := CheckHSQuery(query)
	if err != nil {
		return nil, err
	}
	codes, err := m.hsCodes.SearchHSCodes(ctx, query, HSSearchPageSize)
	if err != nil {
		m.logger.WarnContext(ctx, "hs code search failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, gateway.ToDomainError(err, "code search is unavailable, please try again")
	}
	if len(codes) > HSSearchPageSize {
		codes = codes[:HSSearchPageSize]
	}
	if codes == nil {
		codes = []refmodels.HSCode{}
	}
	return codes, nil
}
