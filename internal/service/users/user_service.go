package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type RegisterInput struct {
	Name     string
	Username string
	Password string
	Confirm  string
	Email    string
	DOB      string
	Gender   string
	Avatar   string
}

// bcrypt only looks at the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

type UserService struct {
	users repository.UserRepository
	cost  int
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, cost: bcrypt.DefaultCost}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, domain.Invalid("username and password are required")
	}
	if password != strings.TrimSpace(input.Confirm) {
		return nil, domain.ErrPasswordMismatch
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	dob := strings.TrimSpace(input.DOB)
	if dob == "" {
		return nil, domain.ErrDOBRequired
	}
	birthday, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return nil, domain.ErrInvalidDOB
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     strings.TrimSpace(input.Name),
		Username: username,
		Password: string(hash),
		Email:    strings.TrimSpace(input.Email),
		DOB:      birthday,
		Gender:   strings.ToLower(strings.TrimSpace(input.Gender)),
		Avatar:   strings.TrimSpace(input.Avatar),
		Role:     domain.UserRoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials. A non-empty role must also match the
// user's role. Unknown users and wrong passwords look the same to callers.
func (s *UserService) Authenticate(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(strings.TrimSpace(password))); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if role != "" && user.Role != role {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

var _ UserUseCase = (*UserService)(nil)
