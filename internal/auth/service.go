package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reece333/SafeEats-TeamM/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrMissingFields      = errors.New("missing required fields")
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		UID:      uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		IsAdmin:  false,
	}

	doc, err := store.Encode(user)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, "users/"+user.UID, doc); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.store.Get(ctx, "users")
	if err != nil {
		return nil, err
	}

	for uid, raw := range users {
		doc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if doc["email"] == email {
			var user User
			if err := store.Decode(doc, &user); err != nil {
				return nil, err
			}
			user.UID = uid
			return &user, nil
		}
	}
	return nil, nil
}
