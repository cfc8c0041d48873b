package entity

import "time"

// 维护任务类型
const (
	TaskTypePreventive = "preventive"
	TaskTypeCorrective = "corrective"
	TaskTypePredictive = "predictive"
)

// 维护任务状态
const (
	TaskStatusPlanned    = "planned"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// MaintenanceTask 维护任务实体
type MaintenanceTask struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	EquipmentID  string     `json:"equipment_id" gorm:"size:32;not null;index"`
	FMEARecordID string     `json:"fmea_record_id" gorm:"size:32;index"`
	Title        string     `json:"title" gorm:"size:200;not null"`
	Description  string     `json:"description" gorm:"type:text"`
	TaskType     string     `json:"task_type" gorm:"size:16;not null;default:preventive"`
	IntervalDays int        `json:"interval_days" gorm:"default:0"`
	Status       string     `json:"status" gorm:"size:16;not null;default:planned"`
	AssignedTo   string     `json:"assigned_to" gorm:"size:32;index"`
	DueDate      *time.Time `json:"due_date"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedBy    string     `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}
