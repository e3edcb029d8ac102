package models

// Response โครงสร้างมาตรฐานของทุก response
type Response struct {
	Status     string          `json:"status"` // "success" | "error"
	Message    string          `json:"message"`
	Data       interface{}     `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
