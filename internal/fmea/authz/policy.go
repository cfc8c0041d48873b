package authz

import "github.com/numancr7/fmea-sub001/internal/fmea/entity"

// 资源类（路由类）
const (
	ResourceUsers            = "users"
	ResourceTeams            = "teams"
	ResourceEquipment        = "equipment"
	ResourceComponents       = "components"
	ResourceEquipmentClasses = "equipment-classes"
	ResourceManufacturers    = "manufacturers"
	ResourceWorkCenters      = "work-centers"
	ResourceFailureModes     = "failure-modes"
	ResourceFailureCauses    = "failure-causes"
	ResourceFailureMechs     = "failure-mechanisms"
	ResourceFMEA             = "fmea"
	ResourceTasks            = "tasks"
	ResourceSpareParts       = "spare-parts"
	ResourceRiskMatrixCells  = "risk-matrix-cells"
	ResourceDashboard        = "dashboard"
)

// Rule 资源类的授权规则：各操作要求的角色集合 + 是否允许资源所有者本人操作。
// Roles 中没有的操作只要求已认证
type Rule struct {
	Roles     map[Action][]string
	AllowSelf bool
}

var adminOnly = []string{entity.RoleAdmin}

// Policy 静态授权策略表，进程启动时定义，运行期只读。
// 管理类资源的全部写操作要求 admin；用户资料更新允许本人（字段裁剪见 CanAssignRole）；
// FMEA记录更新允许创建者本人
var Policy = map[string]Rule{
	ResourceUsers: {
		Roles: map[Action][]string{
			ActionRead:   adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
		AllowSelf: true,
	},
	ResourceTeams: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceEquipment: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceComponents: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceEquipmentClasses: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceManufacturers: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceWorkCenters: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceFailureModes: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceFailureCauses: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceFailureMechs: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceFMEA: {
		Roles: map[Action][]string{
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
		AllowSelf: true,
	},
	ResourceTasks: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceSpareParts: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceRiskMatrixCells: {
		Roles: map[Action][]string{
			ActionCreate: adminOnly,
			ActionUpdate: adminOnly,
			ActionDelete: adminOnly,
		},
	},
	ResourceDashboard: {},
}
