// Package access decides whether a request may reach a protected route.
package access

import (
	"notez-be/internal/entity"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Proceed Decision = iota
	RedirectLogin
	RedirectLogout
)

const (
	LoginPath  = "/login"
	LogoutPath = "/logout"
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectLogout:
		return "redirect_logout"
	default:
		return "unknown"
	}
}

// RedirectPath is the location the caller should be sent to, or "" for Proceed.
func (d Decision) RedirectPath() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectLogout:
		return LogoutPath
	default:
		return ""
	}
}

// AllowList is the set of user ids permitted on protected routes.
// It is built once and only read afterwards.
type AllowList map[string]struct{}

func NewAllowList(ids ...string) AllowList {
	l := make(AllowList, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		l[id] = struct{}{}
	}
	return l
}

func (l AllowList) Contains(id string) bool {
	_, ok := l[id]
	return ok
}

func (l AllowList) Len() int {
	return len(l)
}

// CheckAccess evaluates the allow-list before authentication: a user that is
// not allow-listed is sent to logout even when authenticated.
func CheckAccess(allow AllowList, sessionUserId *string, isAuthenticated bool) Decision {
	if sessionUserId == nil || !allow.Contains(*sessionUserId) {
		return RedirectLogout
	}
	if isAuthenticated {
		return Proceed
	}
	return RedirectLogin
}

// Gate binds an allow-list for use by the HTTP layer.
type Gate struct {
	allow AllowList
}

func NewGate(allow AllowList) *Gate {
	if allow == nil {
		allow = NewAllowList()
	}
	return &Gate{allow: allow}
}

// Evaluate checks a viewer resolved from the session. A viewer whose session
// could not be read is treated as unauthenticated and sent to login.
func (g *Gate) Evaluate(v entity.Viewer) Decision {
	if v.Fault != nil {
		return RedirectLogin
	}
	return CheckAccess(g.allow, v.UserId(), v.Authenticated)
}

// Size is the number of allow-listed users.
func (g *Gate) Size() int {
	return g.allow.Len()
}
