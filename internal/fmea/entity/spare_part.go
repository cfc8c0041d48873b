package entity

import "time"

// 备件状态
const (
	SparePartStatusApproved = "approved"
	SparePartStatusPending  = "pending"
	SparePartStatusRejected = "rejected"
)

// SparePart 备件实体
type SparePart struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Name         string    `json:"name" gorm:"size:128;not null"`
	PartNumber   string    `json:"part_number" gorm:"size:64;index"`
	EquipmentID  string    `json:"equipment_id" gorm:"size:32;index"`
	CurrentStock int       `json:"current_stock" gorm:"not null;default:0"`
	MinStock     int       `json:"min_stock" gorm:"not null;default:0"`
	MaxStock     int       `json:"max_stock" gorm:"not null;default:0"`
	UnitCost     float64   `json:"unit_cost" gorm:"type:decimal(12,2)"`
	Status       string    `json:"status" gorm:"size:16;not null;default:pending"`
	CreatedBy    string    `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SparePart) TableName() string {
	return "spare_parts"
}

// LowStock 库存低于最低库存
func (p *SparePart) LowStock() bool {
	return p.CurrentStock < p.MinStock
}
