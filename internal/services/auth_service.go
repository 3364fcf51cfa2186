package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadflow/server/internal/models"
	"github.com/leadflow/server/internal/repository"
	appErr "github.com/leadflow/server/pkg/errors"
	"github.com/leadflow/server/pkg/logger"
)

// AuthService orchestrates registration and login against the credential
// store. Both operations return a session token; neither ever echoes why a
// login failed beyond "Invalid credentials.".
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, issuer *TokenIssuer) AuthService {
	return &authService{userRepo: userRepo, issuer: issuer}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Register(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", appErr.New(appErr.CodeInvalid, "Please provide email and password.")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", appErr.New(appErr.CodeConflict, "User already exists.")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(ph),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Unique index on email backs the pre-check against concurrent
		// registrations.
		return "", appErr.Wrap(err, appErr.CodeConflict, "User already exists.")
	}

	logger.L().Info("user registered", zap.String("user_id", user.ID.String()))
	return s.issuer.Issue(user.ID)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", appErr.New(appErr.CodeInvalid, "Please provide email and password.")
	}

	// Unknown email and wrong password produce the identical error so the
	// response does not reveal which accounts exist.
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, email, &user); err != nil {
		return "", appErr.New(appErr.CodeUnauthorized, "Invalid credentials.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", appErr.New(appErr.CodeUnauthorized, "Invalid credentials.")
	}

	return s.issuer.Issue(user.ID)
}
