package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"Isolator/internal/httpjson"
	"Isolator/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName        = "session_token"
	DefaultTTL        = 30 * 24 * time.Hour
	minPasswordLength = 6
)

type contextKey string

const claimsKey contextKey = "claims"

type Claims struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

type Service struct {
	Key          []byte
	Repo         repo.Repository
	TTL          time.Duration
	SecureCookie bool
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	Token  string `json:"token"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}

// Issue signs an HS256 token for the user.
func (s *Service) Issue(userID int, login string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Key)
}

func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.Key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.Login == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Middleware rejects requests without a valid session token.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromRequest(r)
		if raw == "" {
			httpjson.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		claims, err := s.Parse(raw)
		if err != nil {
			slog.Debug("rejected token", "error", err)
			httpjson.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

func (s *Service) startSession(w http.ResponseWriter, code int, userID int, login string) {
	token, err := s.Issue(userID, login)
	if err != nil {
		slog.Error("sign token", "error", err)
		httpjson.Error(w, "Could not create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(s.ttl()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpjson.Write(w, code, TokenResponse{UserID: userID, Login: login, Token: token})
}

func (s *Service) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, "Login, email and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < minPasswordLength {
		httpjson.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		httpjson.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := s.Repo.CreateUser(r.Context(), req.Login, req.Email, hash)
	if errors.Is(err, repo.ErrConflict) {
		httpjson.Error(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("create user", "login", req.Login, "error", err)
		httpjson.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	slog.Info("user registered", "user_id", id, "login", req.Login)
	s.startSession(w, http.StatusCreated, id, req.Login)
}

func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		httpjson.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	u, err := s.Repo.GetByLogin(r.Context(), req.Login)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		slog.Error("lookup user", "login", req.Login, "error", err)
		httpjson.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	s.startSession(w, http.StatusOK, u.ID, u.Login)
}
