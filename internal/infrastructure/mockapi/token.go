package mockapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// TokenMarker is the issuer stamped on every token minted by the backend.
// A persisted session whose token does not carry it is discarded.
const TokenMarker = "jobboard-mock"

var errInvalidToken = errors.New("invalid token")

// TokenClaims is the payload of a backend token.
type TokenClaims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id held in the subject claim.
func (c *TokenClaims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

// TokenIssuer mints and verifies opaque bearer tokens. Tokens never expire.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue mints a fresh token for u. Every call yields a distinct token.
func (t *TokenIssuer) Issue(u domain.User) (string, error) {
	claims := TokenClaims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   TokenMarker,
			Subject:  strconv.Itoa(u.ID),
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and marker of token and returns its claims.
func (t *TokenIssuer) Parse(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenMarker),
	)
	if err != nil || !tkn.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
