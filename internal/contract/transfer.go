package contract

// ExportFileName is the attachment name for GET /api/export.
const ExportFileName = "project_stages.json"

// ResetMessage is returned by POST /api/reset once the template is reloaded.
const ResetMessage = "Data reset to default"

type ImportResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
