// Package policy decides what each role may see and do. Decisions are
// explicit switches over models.Role so an unhandled role is a visible
// fall-through to deny rather than a silent string mismatch.
package policy

import (
	"github.com/mkarlin/project-tracker-api/internal/models"
)

// ProjectScope describes which slice of the project list a role sees.
type ProjectScope int

const (
	// ScopeNone hides every project.
	ScopeNone ProjectScope = iota
	// ScopeAll shows every project (admin).
	ScopeAll
	// ScopeAssigned shows projects assigned to the caller (manager).
	ScopeAssigned
	// ScopeTaskAssignee shows projects containing at least one task
	// assigned to the caller (regular user).
	ScopeTaskAssignee
)

// ProjectListScope returns the list-filtering scope for a role.
func ProjectListScope(role models.Role) ProjectScope {
	switch role {
	case models.RoleAdmin:
		return ScopeAll
	case models.RoleManager:
		return ScopeAssigned
	case models.RoleUser:
		return ScopeTaskAssignee
	}
	return ScopeNone
}

// CanViewProject decides detail access for an already-resolved project.
// hasAssignedTask is whether the project contains at least one task
// assigned to the actor; only the user tier consults it.
func CanViewProject(actor *models.User, project *models.Project, hasAssignedTask bool) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return project.AssignedUserID == actor.ID
	case models.RoleUser:
		return hasAssignedTask
	}
	return false
}

// CanCreateProject reports whether the actor may create projects.
func CanCreateProject(actor *models.User) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager, models.RoleUser:
		return false
	}
	return false
}

// CanCreateTask reports whether the actor may create a task under the
// given project. Managers may only populate their own projects.
func CanCreateTask(actor *models.User, project *models.Project) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return project.AssignedUserID == actor.ID
	case models.RoleUser:
		return false
	}
	return false
}

// CanManageUsers reports whether the actor may list or create users.
func CanManageUsers(actor *models.User) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager, models.RoleUser:
		return false
	}
	return false
}
