package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewService loads the static manager policy into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, p := range basePermissions {
		if _, err := s.enforcer.AddPolicy(baseRole, p.Resource, p.Action); err != nil {
			return err
		}
	}
	for role, parent := range roleInheritance {
		if _, err := s.enforcer.AddGroupingPolicy(string(role), parent); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int("permissions", len(basePermissions)),
		zap.Int("roles", len(roleInheritance)),
	)
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	if !allowed {
		s.logger.Debug("rbac denied",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
	}
	return allowed, nil
}
