package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/debtledger/internal/auth"
)

type ownerKey struct{}

// GetOwnerID returns the owner attached by RequireOwner, or "" before auth has run.
func GetOwnerID(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerKey{}).(string)
	return ownerID
}

// WithOwnerID returns a copy of ctx carrying ownerID.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// RequireOwner resolves the ledger owner for each call and rejects the call
// with Unauthenticated when none can be established.
//
// A request without an Authorization header runs as devOwnerID when that is
// set. A request that sends the header must carry a valid bearer token even
// in dev mode. jwtManager is nil when only the dev owner is configured.
func RequireOwner(jwtManager *auth.JWTManager, devOwnerID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ownerID, err := resolveOwner(req.Header().Get("Authorization"), jwtManager, devOwnerID)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithOwnerID(ctx, ownerID), req)
		}
	}
}

func resolveOwner(header string, jwtManager *auth.JWTManager, devOwnerID string) (string, error) {
	if header == "" {
		if devOwnerID == "" {
			return "", auth.ErrMissingToken
		}
		return devOwnerID, nil
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsRune(token, ' ') || jwtManager == nil {
		return "", auth.ErrInvalidToken
	}

	claims, err := jwtManager.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.OwnerID, nil
}
