// Package session issues the signed tokens that bind a browser to its wizard
// session. Tokens carry only the session id and the flow they belong to.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "travelgate/pkg/domain"
	dErrors "travelgate/pkg/domain-errors"
)

// Flow names the sub-flow a token was issued for.
type Flow string

const (
	FlowDeclaration  Flow = "declaration"
	FlowRegistration Flow = "registration"
)

// Claims represents the JWT claims for session tokens
type Claims struct {
	SessionID string `json:"session_id"`
	Flow      Flow   `json:"flow"`
	jwt.RegisteredClaims
}

// TokenService handles session token creation and validation
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
	now        func() time.Time
}

func NewTokenService(signingKey string, issuer string, audience string) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		now:        time.Now,
	}
}

// Issue signs a token for sessionID that expires with the session.
func (s *TokenService) Issue(sessionID id.SessionID, flow Flow, expiresIn time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: sessionID.String(),
		Flow:      flow,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return signed, nil
}

func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	if _, err := id.ParseSessionID(claims.SessionID); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	return claims, nil
}
