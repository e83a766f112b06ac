package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped into every token and required on verification.
const Issuer = "gastudio"

// defaultTokenTTL applies when GenerateToken is called with a non-positive ttl.
const defaultTokenTTL = 12 * time.Hour

// Claims are the JWT claims of a studio API token.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for subject, valid for ttl.
//
// Parameters:
//   - subject: Who the token is for (shown in request logs)
//   - secret: HS256 signing secret
//   - ttl: Token lifetime; non-positive uses 12 hours
//
// Returns:
//   - string: The signed token
//   - error: ErrSecretRequired, ErrTokenInvalid for a blank subject, or a signing failure
func GenerateToken(subject, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSecretRequired
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns its claims.
// It checks the signature, the algorithm, the issuer, the expiry and the subject.
func ParseToken(tokenString, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
