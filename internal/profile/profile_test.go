package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Isolator/internal/auth"
	"Isolator/internal/repo"
)

func TestGetProfile(t *testing.T) {
	users := repo.NewMemoryUserRepository()
	id, err := users.CreateUser(context.Background(), "anna", "anna@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}
	svc := &auth.Service{Key: []byte("k"), Repo: users}
	h := svc.Middleware(http.HandlerFunc((&ProfileHandler{Repo: users}).GetProfile))

	get := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	if rr := get(""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d", rr.Code)
	}

	token, _ := svc.Issue(id, "anna")
	rr := get(token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rr.Code, rr.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != id || p.Email != "anna@example.com" {
		t.Errorf("profile = %+v", p)
	}
	if strings.Contains(rr.Body.String(), "hash") {
		t.Error("password hash leaked")
	}

	stale, _ := svc.Issue(id+1, "anna")
	if rr := get(stale); rr.Code != http.StatusNotFound {
		t.Errorf("mismatched id status = %d", rr.Code)
	}
}
