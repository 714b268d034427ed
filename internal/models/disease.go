package models

import "time"

type Disease struct {
	ID              int       `json:"id"`
	Title           string    `json:"title" binding:"required"`
	CropType        string    `json:"crop_type" binding:"required"`
	Symptoms        string    `json:"symptoms" binding:"required"`
	Causes          string    `json:"causes" binding:"required"`
	Prevention      string    `json:"prevention" binding:"required"`
	Solution        string    `json:"solution" binding:"required"`
	Image           string    `json:"image" binding:"required"`
	VideoLink       string    `json:"video_link"`
	ContentType     string    `json:"content_type"`
	RelatedProducts []int64   `json:"related_products"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
