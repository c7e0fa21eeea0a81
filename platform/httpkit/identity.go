// Package httpkit provides HTTP utilities shared by the API modules.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the caller that AuthRequired verified. Its Roles method lets
// handlers pass it straight to services that authorize by role.
type Identity struct {
	UserID uuid.UUID
	roles  []string
}

// Roles returns the roles carried by the access token.
func (i Identity) Roles() []string {
	return i.roles
}

// IdentityFrom reads the identity AuthRequired stored on the request. The
// second result is false when the request carries no verified user.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	raw, ok := c.Get(ContextUserIDKey)
	if !ok {
		return Identity{}, false
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return Identity{}, false
	}

	var roles []string
	if v, ok := c.Get(ContextRolesKey); ok {
		roles, _ = v.([]string)
	}
	return Identity{UserID: userID, roles: roles}, true
}

// MustGetIdentity returns the verified identity, or aborts with 401 and
// returns nil.
func MustGetIdentity(c *gin.Context) *Identity {
	id, ok := IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return &id
}
