package models

import "time"

// Department is reference data mapping a department id to its display name.
// It is consumed for labels and filter enumeration only; feedback filtering
// always keys on the raw department id.
type Department struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	Code       string    `json:"id" gorm:"size:64;not null;uniqueIndex:idx_departments_hospital_code"`
	HospitalID string    `json:"hospital_id" gorm:"size:64;not null;uniqueIndex:idx_departments_hospital_code"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets custom table name
func (Department) TableName() string { return "departments" }
