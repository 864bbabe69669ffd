package user

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrInvalidName       = errors.New("name must not be empty")
	ErrInvalidEmail      = errors.New("a valid email is required")
)

// Service handles user business logic. Display names double as the tokens
// the expense note scanner matches against ("dinner without Alice"), so
// they are normalized on the way in: surrounding whitespace trimmed and
// runs of inner whitespace collapsed to one space. Emails are lowercased
// so uniqueness is case-insensitive.
type Service struct {
	repo *Repository
}

// NewService creates a new user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// normalizeName trims and collapses whitespace in a display name
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// normalizeEmail lowercases a trimmed email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail is a cheap shape check; real validation happens when mail is
// actually sent, which this system never does.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// Create creates a new user after normalizing the name and email and
// checking the email is free
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	req.Name = normalizeName(req.Name)
	req.Email = normalizeEmail(req.Email)

	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if !validEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List retrieves users with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing user. A renamed user is matched under the
// new name in expense notes from then on; past splits are unaffected
// because they reference the user ID.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		req.Name = &name
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}

	return s.repo.Delete(ctx, id)
}
