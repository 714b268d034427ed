package models

import "time"

type CultivationStep struct {
	ID            int    `json:"id"`
	CultivationID int    `json:"cultivation_id"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Image         string `json:"image"`
	OrderIndex    int    `json:"order_index"`
}

type Cultivation struct {
	ID              int               `json:"id"`
	Title           string            `json:"title" binding:"required"`
	CropType        string            `json:"crop_type" binding:"required,oneof=crop vegetable flower fruit"`
	Description     string            `json:"description" binding:"required"`
	Image           string            `json:"image" binding:"required"`
	Steps           []CultivationStep `json:"steps" binding:"dive"`
	RelatedProducts []int64           `json:"related_products"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
