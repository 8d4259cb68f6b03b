package dtos

type SiotImportUploadRequest struct {
	TableName string `form:"table_name" json:"table_name"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
