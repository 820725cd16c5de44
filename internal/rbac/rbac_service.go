package rbac

import (
	"sort"
	"sync"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role domain.Role) ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewService loads rules into the enforcer. An empty rule set means
// DefaultPolicy.
func NewService(enforcer *casbin.Enforcer, rules []Rule, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	if len(rules) == 0 {
		rules = DefaultPolicy()
	}

	enforcer.ClearPolicy()
	for _, r := range rules {
		if _, err := enforcer.AddPolicy(r.Role.String(), r.Resource, r.Action); err != nil {
			return nil, err
		}
	}
	l.Debug("rbac policy loaded", zap.Int("rules", len(rules)))

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, domain.ErrUnknownRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(req.Role.String(), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role.String()),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role.String()),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role domain.Role) ([]domain.PermissionResponse, error) {
	if !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	policies, err := s.enforcer.GetFilteredPolicy(0, role.String())
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}
