package models

import "math"

// PaginationParams ใช้เก็บค่าการแบ่งหน้า
type PaginationParams struct {
	Page  int `json:"page" query:"page" example:"1"`
	Limit int `json:"limit" query:"limit" example:"20"`
}

// PaginationMeta ข้อมูลการแบ่งหน้าที่ส่งกลับ
type PaginationMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// DefaultPagination ค่าตั้งต้นสำหรับ Pagination
func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, Limit: 20}
}

// Normalize page < 1 becomes 1 and limit < 1 becomes 10.
func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
}

// GetSkip คำนวณจำนวนรายการที่ต้องข้าม
func (p PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// NewPaginationMeta builds the pagination block; returned is the number of items on this page.
func NewPaginationMeta(total int64, returned int, params PaginationParams) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	return &PaginationMeta{
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNextPage: params.GetSkip()+int64(returned) < total,
		HasPrevPage: params.Page > 1,
	}
}
