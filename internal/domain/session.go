package domain

// Role is the access level attached to a session. This is a local role
// tag, not a security boundary: anyone with the shared admin key can
// mint an admin session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Session is the current local identity. Persisted across runs under the
// currentUser slot; absent until the first successful login.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
