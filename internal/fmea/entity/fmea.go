package entity

import "time"

// 风险等级
const (
	RiskLevelLow      = "low"
	RiskLevelMedium   = "medium"
	RiskLevelHigh     = "high"
	RiskLevelCritical = "critical"
)

// FMEARecord FMEA分析记录：一台设备/部件上的一个失效模式
type FMEARecord struct {
	ID                 string `json:"id" gorm:"primaryKey;size:32"`
	EquipmentID        string `json:"equipment_id" gorm:"size:32;not null;index"`
	ComponentID        string `json:"component_id" gorm:"size:32;index"`
	FailureModeID      string `json:"failure_mode_id" gorm:"size:32;index"`
	FailureCauseID     string `json:"failure_cause_id" gorm:"size:32"`
	FailureMechanismID string `json:"failure_mechanism_id" gorm:"size:32"`

	// 描述字段（对评分引擎不透明）
	Effect     string `json:"effect" gorm:"type:text"`
	Mitigation string `json:"mitigation" gorm:"type:text"`
	Category   string `json:"category" gorm:"size:64;index"`

	// 评分输入：定量模式 severity/occurrence/detection ∈ [1,10]，
	// 矩阵模式 severity/probability ∈ [1,5]
	Severity    *int `json:"severity" gorm:"type:smallint"`
	Occurrence  *int `json:"occurrence" gorm:"type:smallint"`
	Detection   *int `json:"detection" gorm:"type:smallint"`
	Probability *int `json:"probability" gorm:"type:smallint"`

	// 派生字段：服务端重算，不信任请求体
	RPN       *int   `json:"rpn" gorm:"type:int"`
	RiskLevel string `json:"risk_level" gorm:"size:16;index"`

	CreatedBy string    `json:"created_by" gorm:"size:32;index"`
	TeamID    string    `json:"team_id" gorm:"size:32;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Equipment        *Equipment        `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Component        *Component        `json:"component,omitempty" gorm:"foreignKey:ComponentID"`
	FailureMode      *FailureMode      `json:"failure_mode,omitempty" gorm:"foreignKey:FailureModeID"`
	FailureCause     *FailureCause     `json:"failure_cause,omitempty" gorm:"foreignKey:FailureCauseID"`
	FailureMechanism *FailureMechanism `json:"failure_mechanism,omitempty" gorm:"foreignKey:FailureMechanismID"`
}

func (FMEARecord) TableName() string {
	return "fmea_records"
}
