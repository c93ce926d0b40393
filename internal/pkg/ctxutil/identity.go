package ctxutil

import "context"

// Identity 请求调用方身份
// 由认证中间件在解析 JWT 成功后注入，Service 层显式接收，不读取全局状态
type Identity struct {
	UserID string
	Roles  []string
}

// HasRole 检查身份是否持有指定角色
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// identityKeyType 使用私有类型避免与其他 context key 冲突
type identityKeyType struct{}

var identityKey = identityKeyType{}

// WithIdentity 将调用方身份注入到 context 中
// 说明：在认证中间件中调用，例如解析 JWT 成功后：
//
//	ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{...})
//	c.Request = c.Request.WithContext(ctx)
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity 从 context 中解析调用方身份
func GetIdentity(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	ident, ok := ctx.Value(identityKey).(Identity)
	if !ok || ident.UserID == "" {
		return Identity{}, false
	}
	return ident, true
}
