package models

import "time"

type Order struct {
	ID          int64     `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `gorm:"column:CreatedAt" json:"created_at"`
	Description string    `gorm:"column:Description" json:"description"`
}

func (Order) TableName() string { return "Orders" }
