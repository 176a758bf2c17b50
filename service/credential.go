package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential 调用后端时携带的凭证，由调用方显式传入
type Credential struct {
	Token string
}

// NewCredential 从 Authorization 头或裸 token 构造凭证
func NewCredential(raw string) Credential {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return Credential{Token: raw}
}

// Available 凭证是否可用：非空，且若为 JWT 则未过期
// 这里只读取 exp，不校验签名，签名由后端负责
func (c Credential) Available() bool {
	return c.availableAt(time.Now())
}

func (c Credential) availableAt(now time.Time) bool {
	if c.Token == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, &claims); err != nil {
		// 非 JWT 的不透明 token 原样透传
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}

// Subject 返回 JWT 中的 sub，用于日志；非 JWT 返回空串
func (c Credential) Subject() string {
	if c.Token == "" {
		return ""
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, &claims); err != nil {
		return ""
	}
	return claims.Subject
}
