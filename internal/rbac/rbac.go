package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles are global in this system: every user is ROLE_USER, admins are
// ROLE_ADMIN. Policies are static and live in code, not in the database.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

var policies = [][]string{
	{"ROLE_ADMIN", "*", "*"},
	{"ROLE_USER", "leave", "read"},
	{"ROLE_USER", "leave", "create"},
	{"ROLE_USER", "leave", "update"},
	{"ROLE_USER", "department", "read"},
}

type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type enforcer struct {
	casbin *casbin.Enforcer
}

func NewEnforcer() (Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &enforcer{casbin: e}, nil
}

func (e *enforcer) Enforce(role, resource, action string) (bool, error) {
	return e.casbin.Enforce(role, resource, action)
}
