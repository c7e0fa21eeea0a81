package service

// Principal is the authenticated caller of a search operation.
type Principal interface {
	Roles() []string
}

// ReadAuthorizer decides whether a principal may read records.
type ReadAuthorizer interface {
	CanRead(p Principal) bool
}

// ReadRoles are the roles granted read access by default.
var ReadRoles = []string{"admin", "staff", "readonly"}

// RoleAuthorizer grants read access to principals holding any allowed role.
type RoleAuthorizer struct {
	allowed map[string]struct{}
}

// NewRoleAuthorizer creates an authorizer for roles, or ReadRoles when none
// are given.
func NewRoleAuthorizer(roles ...string) *RoleAuthorizer {
	if len(roles) == 0 {
		roles = ReadRoles
	}
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return &RoleAuthorizer{allowed: allowed}
}

// CanRead implements ReadAuthorizer.
func (a *RoleAuthorizer) CanRead(p Principal) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles() {
		if _, ok := a.allowed[r]; ok {
			return true
		}
	}
	return false
}

// StaticPrincipal is a fixed role set, used by tooling that runs outside an
// HTTP request.
type StaticPrincipal []string

// Roles implements Principal.
func (p StaticPrincipal) Roles() []string { return p }
