// Package rbac wires a casbin enforcer with the portal's two-role policy.
// The identity provider only hands us {id, role}, so the policy set is
// static: admins act on everything, employees on their own attendance,
// leave, documents and face data (ownership itself is re-checked inside
// the services).
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

var policies = [][]string{
	{RoleAdmin, "department", "*"},
	{RoleAdmin, "designation", "*"},
	{RoleAdmin, "leave_type", "*"},
	{RoleAdmin, "leave_policy", "*"},
	{RoleAdmin, "employee", "*"},
	{RoleAdmin, "attendance", "*"},
	{RoleAdmin, "leave_request", "*"},
	{RoleAdmin, "document", "*"},
	{RoleAdmin, "face", "*"},

	{RoleEmployee, "attendance", "sign"},
	{RoleEmployee, "attendance", "read_self"},
	{RoleEmployee, "leave_request", "create"},
	{RoleEmployee, "leave_request", "read_self"},
	{RoleEmployee, "leave_request", "update"},
	{RoleEmployee, "leave_request", "team"},
	{RoleEmployee, "leave_type", "read"},
	{RoleEmployee, "leave_policy", "read"},
	{RoleEmployee, "department", "read"},
	{RoleEmployee, "designation", "read"},
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "document", "create"},
	{RoleEmployee, "document", "read"},
	{RoleEmployee, "document", "update"},
	{RoleEmployee, "document", "delete"},
	{RoleEmployee, "face", "enroll"},
	{RoleEmployee, "face", "recognize"},
}

// NewEnforcer builds the in-memory enforcer used by middleware.Authorize.
func NewEnforcer() (*casbin.Enforcer, error) {
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

	return e, nil
}
