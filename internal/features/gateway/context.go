package gateway

import (
	api_keys "hittags/internal/features/api_keys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const authContextKey = "authContext"

// AuthContext is the request-scoped identity bundle the gateway hands to
// route handlers. Read-only, never persisted.
type AuthContext struct {
	UserID uuid.UUID
	ApiKey *api_keys.ApiKey
	Scopes []api_keys.Scope
}

// GetAuthContext extracts the authorization context set by the gateway
// middleware.
func GetAuthContext(ctx *gin.Context) (*AuthContext, bool) {
	value, exists := ctx.Get(authContextKey)
	if !exists {
		return nil, false
	}

	authContext, ok := value.(*AuthContext)

	return authContext, ok
}
