// Package auth issues and validates the bearer tokens that identify a ledger owner.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped into every token and required on validation.
const Issuer = "debtledger"

// clockSkew tolerated on exp/nbf/iat checks.
const clockSkew = 30 * time.Second

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims carries the ledger owner a token was minted for.
type Claims struct {
	OwnerID string `json:"owner_id"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 owner tokens.
type JWTManager struct {
	key    []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		key: []byte(secret),
		ttl: ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithIssuedAt(),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// Generate returns a signed token for ownerID that expires after the manager's TTL.
func (m *JWTManager) Generate(ownerID string) (string, error) {
	if ownerID == "" {
		return "", errors.New("owner id is required")
	}

	issued := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
		},
	}).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", ownerID, err)
	}
	return signed, nil
}

// Validate verifies signature, issuer and lifetime. Every failure wraps ErrInvalidToken.
func (m *JWTManager) Validate(raw string) (*Claims, error) {
	var claims Claims
	if _, err := m.parser.ParseWithClaims(raw, &claims, m.keyFunc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.OwnerID == "" {
		return nil, fmt.Errorf("%w: no owner_id claim", ErrInvalidToken)
	}
	if claims.Subject != "" && claims.Subject != claims.OwnerID {
		return nil, fmt.Errorf("%w: subject does not match owner", ErrInvalidToken)
	}
	return &claims, nil
}

func (m *JWTManager) keyFunc(*jwt.Token) (any, error) {
	return m.key, nil
}
