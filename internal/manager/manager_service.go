package manager

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	managererrors "go-leave/internal/manager/errors"
	"go-leave/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const loginSuccessMessage = "Login successful"

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

//go:generate mockgen -source=manager_service.go -destination=mock/manager_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Create(ctx context.Context, req CreateManagerRequest) (ManagerResponse, error)
}

type service struct {
	repo   Repository
	token  TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, token TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("manager.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("manager.service")
	}
	if token.TTL <= 0 {
		token.TTL = 8 * time.Hour
	}
	return &service{repo: repo, token: token, now: time.Now, logger: l}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknown usernames still pay for one bcrypt comparison
func compareDummyHash(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	s.logger.Debug("manager login requested", zap.String("username", req.Username))

	m, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			compareDummyHash(req.Password)
			s.logger.Warn("manager login failed", zap.String("reason", "unknown username"))
			return LoginResponse{}, managererrors.ErrInvalidCredentials
		}
		s.logger.Error("manager login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("manager login failed",
			zap.Uint("manager_id", m.ID),
			zap.String("reason", "password mismatch"),
		)
		return LoginResponse{}, managererrors.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.token.TTL)
	accessToken, err := s.generateToken(m, expiresAt)
	if err != nil {
		s.logger.Error("manager token generation failed", zap.Uint("manager_id", m.ID), zap.Error(err))
		return LoginResponse{}, managererrors.ErrTokenGenerationFailed
	}

	s.logger.Info("manager login success", zap.Uint("manager_id", m.ID))
	return LoginResponse{
		Success: true,
		Message: loginSuccessMessage,
		Manager: ManagerSummary{
			ID:   m.ID,
			Name: m.Name,
			Role: m.Role,
		},
		AccessToken: accessToken,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateManagerRequest) (ManagerResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return ManagerResponse{}, apperror.RequiredField("Username")
	}
	if strings.TrimSpace(req.Name) == "" {
		return ManagerResponse{}, apperror.RequiredField("Name")
	}
	if req.Password == "" {
		return ManagerResponse{}, apperror.RequiredField("Password")
	}
	if !req.Role.Valid() {
		return ManagerResponse{}, managererrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash manager password failed", zap.Error(err))
		return ManagerResponse{}, err
	}

	m := &Manager{
		Username:     username,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("create manager failed", zap.String("username", username), zap.Error(err))
		return ManagerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("manager created", zap.Uint("manager_id", m.ID), zap.String("role", string(m.Role)))
	return ManagerResponse{
		ID:        m.ID,
		Username:  m.Username,
		Name:      m.Name,
		Role:      m.Role,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) generateToken(m *Manager, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"manager_id": strconv.FormatUint(uint64(m.ID), 10),
		"role":       string(m.Role),
		"iat":        s.now().Unix(),
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.token.Secret))
}
