package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

// NewUserService wires the user model to the database. mb may be nil, in which case no user.created
// events are published.
func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenManager, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates a new user account and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Name:  strings.TrimSpace(name),
		Email: email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, &u)

	return &u, nil
}

// publishUserCreated never fails the signup; a broker outage only costs the welcome mail.
func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	if s.mb == nil {
		return
	}

	body, err := json.Marshal(common.UserCreatedEvent{Email: u.Email, Name: u.Name})
	if err != nil {
		s.logger.Error("could not encode user.created event", slog.Int("user_id", u.ID), slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.mb.Publish(ctx, body, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		s.logger.Error("could not publish user.created event", slog.Int("user_id", u.ID), slog.String("error", err.Error()))
	}
}

// VerifyCredentials returns the user owning email when password matches its hash.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	v := common.NewValidator()
	validateEmail(v, email)
	validatePasswordProvided(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok || !user.IsActive() {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	return s.m.getUserByID(ctx, id)
}

func (s *UserService) IssueToken(u *User) (string, error) {
	return s.tokens.Issue(u.ID)
}

// ResolveToken turns an Authorization header value into the user it was issued for.
// The returned error is one of ErrMissingToken, ErrMalformedToken, ErrInvalidToken or ErrNotFound,
// or a store error.
func (s *UserService) ResolveToken(ctx context.Context, header string) (*User, error) {
	token, err := extractBearerToken(header)
	if err != nil {
		return nil, err
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	return s.m.getUserByID(ctx, id)
}
