package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leadflow/server/internal/services"
)

func TestAuthMiddleware(t *testing.T) {
	issuer := services.NewTokenIssuer([]byte("secret"), time.Hour)
	userID := uuid.New()
	token, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var gotUserID uuid.UUID
	h := Auth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotUserID != userID {
		t.Fatalf("expected user id %s in context, got %s", userID, gotUserID)
	}

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Basic dXNlcjpwYXNz",
		"tampered":   "Bearer " + token + "x",
	} {
		req := httptest.NewRequest(http.MethodGet, "/leads", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rr.Code)
		}
	}
}
