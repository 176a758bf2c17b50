package middleware

import (
	"net/http"

	"restoadmin/service"

	"github.com/gin-gonic/gin"
)

const credentialKey = "credential"

// BearerCredential 从 Authorization 头（或 token Cookie）读取操作员凭证，存入上下文
// 凭证不在此处校验，缺失或过期时请求照常继续，由后端决定是否返回 401
func BearerCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				raw = cookie
			}
		}
		c.Set(credentialKey, service.NewCredential(raw))
		c.Next()
	}
}

// RequireCredential 要求请求携带可用凭证（非空且未过期）
// 用于直接返回服务端缓存数据、不经后端鉴权的接口
func RequireCredential(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCredential(c).Available() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"message":  service.UserMessage(service.ErrUnauthorized),
				"redirect": loginURL,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCredential 获取当前请求的凭证
func GetCredential(c *gin.Context) service.Credential {
	if v, ok := c.Get(credentialKey); ok {
		if cred, ok := v.(service.Credential); ok {
			return cred
		}
	}
	return service.Credential{}
}
