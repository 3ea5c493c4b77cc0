package dto

// CreatePatientRequest registers a patient record.
type CreatePatientRequest struct {
	FullName string `json:"fullName"`
	Ward     string `json:"ward,omitempty"`
}

// PatientResponse represents a patient in API responses.
type PatientResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Ward     string `json:"ward"`
}
