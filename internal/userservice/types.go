package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
)

const (
	// DefaultTokenTTL is used when the token manager is built with a zero lifetime.
	DefaultTokenTTL time.Duration = 7 * 24 * time.Hour

	bcryptCost = 10
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	tokens *TokenManager
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// TokenManager signs and verifies the bearer tokens handed out at signup and signin.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}
