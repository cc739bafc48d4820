package middleware

import (
	"net/http"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) unauthorized(ctx *gin.Context, message string, err error) {
	m.app.Logger.Debugf("Rejecting request: %s, error: %v", message, err)
	util.ResponseFailed(ctx, http.StatusUnauthorized, message, util.GenerateErrorMessages(err, "unauthorized"), nil)
	ctx.Abort()
}

// AuthMiddleware verifies the Bearer access token and stores its user payload
// under the "user" context key for downstream handlers.
func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.unauthorized(ctx, "", err)
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.unauthorized(ctx, "Invalid token", err)
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.unauthorized(ctx, "Invalid access token type", nil)
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}
