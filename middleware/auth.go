package middleware

import (
	"net/http"
	"strings"

	"Mivo/pkg/context"
	"Mivo/pkg/jwt"
	"Mivo/pkg/response"

	"github.com/gin-gonic/gin"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// ws 握手场景允许 query 携带 token
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		tokenStr := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			tokenStr = parts[1]
		}

		claims, err := jwt.ParseToken(secret, tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "无效的访问令牌")
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxModerator, claims.Moderator)

		c.Next()
	}
}
