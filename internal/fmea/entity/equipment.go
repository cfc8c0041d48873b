package entity

import "time"

// Equipment 设备实体
type Equipment struct {
	ID               string    `json:"id" gorm:"primaryKey;size:32"`
	Tag              string    `json:"tag" gorm:"size:64;not null;uniqueIndex"`
	Name             string    `json:"name" gorm:"size:128;not null"`
	Description      string    `json:"description" gorm:"type:text"`
	EquipmentClassID string    `json:"equipment_class_id" gorm:"size:32;index"`
	ManufacturerID   string    `json:"manufacturer_id" gorm:"size:32;index"`
	WorkCenterID     string    `json:"work_center_id" gorm:"size:32;index"`
	TeamID           string    `json:"team_id" gorm:"size:32;index"`
	Model            string    `json:"model" gorm:"size:64"`
	SerialNumber     string    `json:"serial_number" gorm:"size:64"`
	Status           string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedBy        string    `json:"created_by" gorm:"size:32"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// 关联
	EquipmentClass *EquipmentClass `json:"equipment_class,omitempty" gorm:"foreignKey:EquipmentClassID"`
	Manufacturer   *Manufacturer   `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`
	WorkCenter     *WorkCenter     `json:"work_center,omitempty" gorm:"foreignKey:WorkCenterID"`
	Components     []Component     `json:"components,omitempty" gorm:"foreignKey:EquipmentID"`

	// 非数据库字段：withScore=true 时附带的动态评分，不落库
	AverageRPN    *int `json:"average_rpn,omitempty" gorm:"-"`
	ScoredRecords *int `json:"scored_records,omitempty" gorm:"-"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Component 部件实体
type Component struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	EquipmentID string    `json:"equipment_id" gorm:"size:32;not null;index"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Function    string    `json:"function" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Component) TableName() string {
	return "components"
}
