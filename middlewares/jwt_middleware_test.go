package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kpimanager/auth"
	"kpimanager/middlewares"
	"kpimanager/rbac"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, captured *rbac.Actor) http.Handler {
	t.Helper()
	protect := middlewares.JWTMiddleware(testSecret)
	return protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = middlewares.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	access, _, err := auth.GenerateTokenPair(auth.Claims{
		UserID:     "507f1f77bcf86cd799439011",
		Email:      "manager@example.com",
		Role:       "Manager",
		Department: "507f1f77bcf86cd799439012",
	}, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var actor rbac.Actor
	handler := protectedEcho(t, &actor)

	req := httptest.NewRequest(http.MethodGet, "/api/kpis", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if actor.ID != "507f1f77bcf86cd799439011" {
		t.Errorf("actor id = %q", actor.ID)
	}
	if actor.Role != rbac.RoleManager {
		t.Errorf("actor role = %q", actor.Role)
	}
	if actor.Department != "507f1f77bcf86cd799439012" {
		t.Errorf("actor department = %q", actor.Department)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	validToken, _, err := auth.GenerateTokenPair(auth.Claims{
		UserID: "507f1f77bcf86cd799439011",
		Email:  "staff@example.com",
		Role:   "Staff",
	}, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	wrongSecretToken, _, err := auth.GenerateTokenPair(auth.Claims{
		UserID: "507f1f77bcf86cd799439011",
		Role:   "Staff",
	}, "other-secret")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	unknownRoleToken, _, err := auth.GenerateTokenPair(auth.Claims{
		UserID: "507f1f77bcf86cd799439011",
		Role:   "SuperAdmin",
	}, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", validToken},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + wrongSecretToken},
		{"unknown role claim", "Bearer " + unknownRoleToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor rbac.Actor
			handler := protectedEcho(t, &actor)

			req := httptest.NewRequest(http.MethodGet, "/api/kpis", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if actor.ID != "" {
				t.Fatal("handler ran for a rejected request")
			}
		})
	}
}

func TestGetActorFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := middlewares.GetActorFromContext(req.Context())
	if actor != (rbac.Actor{}) {
		t.Fatalf("got %+v, want zero actor", actor)
	}
}
