package dto

type CoverageCheckRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CoverageCheckResponse struct {
	Inside             bool    `json:"inside"`
	DistanceToCenterKm float64 `json:"distance_to_center_km"`
}

type PatientSearchResult struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
}

type PatientSearchResponse struct {
	Patients []PatientSearchResult `json:"patients"`
}
