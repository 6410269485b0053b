package rbac

import (
	"sync"

	"go-attend/internal/domain"

	"github.com/casbin/casbin/v2"
)

// Role adalah enumerasi tertutup (domain.Role); grant di bawah adalah satu-
// satunya sumber kebenaran otorisasi. Tidak ada perbandingan string role di
// layer lain.
var rolePolicies = [][3]string{
	{string(domain.RoleEmployee), "attendance", "create"},
	{string(domain.RoleEmployee), "attendance", "read"},
	{string(domain.RoleEmployee), "location", "read"},
	{string(domain.RoleEmployee), "leave", "create"},
	{string(domain.RoleEmployee), "leave", "read"},
	{string(domain.RoleEmployee), "notification", "read"},

	{string(domain.RoleTeamLead), "leave", "decide"},
	{string(domain.RoleTeamLead), "user", "read"},
	{string(domain.RoleTeamLead), "team", "read"},

	{string(domain.RoleAdmin), "location", "manage"},
	{string(domain.RoleAdmin), "user", "manage"},
	{string(domain.RoleAdmin), "team", "manage"},
}

// Pewarisan: ADMIN ⊇ TEAM_LEAD ⊇ EMPLOYEE.
var roleInheritance = [][2]string{
	{string(domain.RoleTeamLead), string(domain.RoleEmployee)},
	{string(domain.RoleAdmin), string(domain.RoleTeamLead)},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleInheritance {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforcer.Enforce(string(req.Role), req.Resource, req.Action)
}
