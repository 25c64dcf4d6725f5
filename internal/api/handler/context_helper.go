package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"connected/backend/pkg/jwt"
	"connected/backend/pkg/response"
)

// MustGetClaims 从 Gin 上下文中安全提取 JWT Claims。
// 如果认证中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// ParseIDParam 解析路径参数中的正整数 ID。
// 解析失败时写入 400 响应并返回 false。
func ParseIDParam(c *gin.Context, name string, code int) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, code, name+" 必须为正整数")
		return 0, false
	}
	return id, true
}
