package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	repo *UserRepository
}

func NewUserService(repo *UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || email == "" || req.Password == "" {
		return errors.New("Name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("Invalid email address")
	}
	if len(req.Password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}

	existingUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return errors.New("Email already registered")
	}

	hashPassword, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashPassword,
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *UserService) AuthenticateUser(ctx context.Context, cred Credential) (string, error) {
	email := strings.TrimSpace(strings.ToLower(cred.Email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", errors.New("Invalid Credentials")
	}

	token, err := GenerateJWT(user.Name, user.Email, user.ID.Hex(), time.Hour*24)
	if err != nil {
		return "", errors.New("Token not generated")
	}
	return token, nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("User not found")
	}
	return user, nil
}
