package session

import (
	id "travelgate/pkg/domain"
	authmw "travelgate/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *Claims) *authmw.SessionClaims {
	// ValidateToken already rejected malformed ids.
	sessionID, _ := id.ParseSessionID(claims.SessionID)
	return &authmw.SessionClaims{
		SessionID: sessionID,
		Flow:      string(claims.Flow),
		JTI:       claims.ID,
	}
}

// MiddlewareAdapter exposes TokenService to the auth middleware.
type MiddlewareAdapter struct {
	service *TokenService
}

func NewMiddlewareAdapter(service *TokenService) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*authmw.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
