package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.UserResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)
	// EnsureAdmin creates the bootstrap admin account when it is missing.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Admin    bool   `json:"admin"`
}

type userService struct {
	userRepo repository.UserRepository
	log      *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, log *slog.Logger) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userService{userRepo: userRepo, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	return s.create(ctx, req.Email, req.Password, false, "self", req)
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error) {
	return s.create(ctx, req.Email, req.Password, req.Admin, actor.auditID(), req)
}

func (s *userService) create(ctx context.Context, email, password string, admin bool, creator string, req interface{}) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, duplicate("user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Admin:        admin,
		RegisteredOn: time.Now(),
	}
	user.CreatedBy = creator
	user.UpdatedBy = creator
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, writeErr(err, "user")
	}

	s.log.Info("user registered", "email", user.Email, "admin", user.Admin)
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	_, err = s.create(ctx, email, password, true, "system", &CreateUserRequest{Email: email, Password: password, Admin: true})
	if err == nil {
		s.log.Info("admin user created", "email", normalizeEmail(email))
	}
	return err
}
