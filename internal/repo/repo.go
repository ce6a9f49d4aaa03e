package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("login or email already registered")
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	GetByLogin(ctx context.Context, login string) (User, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         SERIAL PRIMARY KEY,
	login      TEXT NOT NULL UNIQUE,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open connects to Postgres. Connection strings without an sslmode get
// sslmode=require.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", WithSSLMode(dsn))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func WithSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return strings.TrimSpace(dsn + " sslmode=require")
}

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserDB(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowxContext(ctx, query, login, email, passwordHash).Scan(&id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return 0, ErrConflict
	}
	return id, err
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, "SELECT id, login, email, password, created_at FROM users WHERE login=$1", login)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// MemoryUserRepository keeps users in process memory; used by tests and
// local runs without a database.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[string]User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]User)}
}

func (m *MemoryUserRepository) CreateUser(_ context.Context, login, email, passwordHash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login || u.Email == email {
			return 0, ErrConflict
		}
	}
	m.nextID++
	m.users[login] = User{ID: m.nextID, Login: login, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	return m.nextID, nil
}

func (m *MemoryUserRepository) GetByLogin(_ context.Context, login string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[login]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
