package profile

import (
	"errors"
	"net/http"
	"time"

	"Isolator/internal/auth"
	"Isolator/internal/httpjson"
	"Isolator/internal/repo"
)

type ProfileHandler struct {
	Repo repo.Repository
}

// Profile is the public view of an account; the password hash never leaves repo.
type Profile struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetProfile returns the account behind the current session.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == 0 {
		httpjson.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.Repo.GetByLogin(r.Context(), claims.Login)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && u.ID != claims.UserID) {
		httpjson.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		httpjson.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	httpjson.Write(w, http.StatusOK, Profile{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}
