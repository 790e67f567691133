package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/debtledger/internal/auth"
)

// captureOwner is a terminal handler that records the owner it was called with.
func captureOwner(got *string) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*got = GetOwnerID(ctx)
		return connect.NewResponse(&struct{}{}), nil
	}
}

func TestRequireOwner(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate("owner-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	otherManager := auth.NewJWTManager("other-secret", time.Hour)
	foreign, err := otherManager.Generate("owner-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name       string
		manager    *auth.JWTManager
		devOwner   string
		header     string
		wantOwner  string
		wantCode   connect.Code
		wantReject bool
	}{
		{name: "valid token", manager: jwtManager, header: "Bearer " + token, wantOwner: "owner-1"},
		{name: "token wins over dev owner", manager: jwtManager, devOwner: "dev", header: "Bearer " + token, wantOwner: "owner-1"},
		{name: "dev owner fallback", manager: jwtManager, devOwner: "dev", wantOwner: "dev"},
		{name: "dev owner without jwt", devOwner: "dev", wantOwner: "dev"},
		{name: "missing header", manager: jwtManager, wantReject: true, wantCode: connect.CodeUnauthenticated},
		{name: "malformed header", manager: jwtManager, header: "Token " + token, wantReject: true, wantCode: connect.CodeUnauthenticated},
		{name: "wrong secret", manager: jwtManager, header: "Bearer " + foreign, wantReject: true, wantCode: connect.CodeUnauthenticated},
		{name: "header without jwt configured", devOwner: "dev", header: "Bearer " + token, wantReject: true, wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := RequireOwner(tt.manager, tt.devOwner)(captureOwner(&got))

			req := connect.NewRequest(&struct{}{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := handler(context.Background(), req)
			if tt.wantReject {
				if err == nil {
					t.Fatal("expected rejection, got nil error")
				}
				if code := connect.CodeOf(err); code != tt.wantCode {
					t.Errorf("expected code %v, got %v", tt.wantCode, code)
				}
				if got != "" {
					t.Errorf("handler should not run, ran as %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantOwner {
				t.Errorf("expected owner %q, got %q", tt.wantOwner, got)
			}
		})
	}
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	wantErr := connect.NewError(connect.CodeNotFound, errors.New("debt missing"))
	handler := LoggingInterceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, wantErr
	})

	_, err := handler(WithOwnerID(context.Background(), "owner-1"), connect.NewRequest(&struct{}{}))
	if err != wantErr {
		t.Errorf("expected the handler error unchanged, got %v", err)
	}
}
