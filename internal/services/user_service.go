package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"installment-backend/internal/auth"
	"installment-backend/internal/cache"
	"installment-backend/internal/models"
)

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
	Logger     *zap.Logger
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
		Logger:     logger,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// CreateUser creates a user with an explicit role (admin operation).
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, &models.ValidationError{Msg: "name, email, and password are required"}
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	_, err = s.Repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, &models.ValidationError{Field: "email", Msg: "user with this email already exists"}
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.Logger.Info("user created",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Signup registers a client account and returns an authenticated session.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	user, err := s.CreateUser(ctx, &models.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     string(models.RoleClient),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token. Verified credentials
// are cached so repeat logins skip the bcrypt comparison; the cache degrades
// to a no-op when redis is unavailable.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &models.ValidationError{Msg: "email and password are required"}
	}

	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if user, err := s.Repo.Get(ctx, int(userID)); err == nil {
			return s.issueToken(user)
		}
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, models.ErrInvalidCredentials
	}

	cache.CacheAuth(ctx, req.Email, req.Password, int64(user.ID))
	return s.issueToken(user)
}

func (s *UserService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// EnsureAdmin creates the bootstrap admin account if no user with the given
// email exists. Called once at startup when ADMIN_EMAIL is configured.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return err
	}
	s.Logger.Info("bootstrap admin created", zap.String("email", email))
	return nil
}
