// Package authz 集中授权决策：路由级与资源级门禁共用同一张策略表。
// 决策函数无状态、无I/O，Principal 的解析由上游中间件完成。
package authz

import "github.com/numancr7/fmea-sub001/internal/fmea/entity"

// Action 操作类型
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Principal 已认证调用方，每个请求解析一次，请求期间不可变
type Principal struct {
	ID     string
	Role   string
	TeamID string
}

// 拒绝原因
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

// Decision 授权决策结果
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow 放行
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 拒绝并携带原因
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize 两级门禁：调用方角色在操作要求的角色集合内放行；
// 否则当策略允许本人操作且 ownerID 与调用方一致时放行。
// 未登记的资源一律拒绝（fail closed）。
func Authorize(p *Principal, resource string, action Action, ownerID string) Decision {
	if p == nil || p.ID == "" {
		return Deny(ReasonUnauthenticated)
	}

	rule, ok := Policy[resource]
	if !ok {
		return Deny(ReasonForbidden)
	}

	required, ok := rule.Roles[action]
	if !ok {
		// 策略未要求特定角色：已认证即可
		return Allow()
	}

	for _, role := range required {
		if p.Role == role {
			return Allow()
		}
	}

	if rule.AllowSelf && ownerID != "" && p.ID == ownerID {
		return Allow()
	}

	return Deny(ReasonForbidden)
}

// CanAssignRole 仅管理员可设置 role / team 字段。
// 非管理员的本人更新需静默丢弃这两个字段，而不是报错或应用
func CanAssignRole(p *Principal) bool {
	return p != nil && p.Role == entity.RoleAdmin
}
