package dto

type RouteStopResponse struct {
	PatientID        string   `json:"patient_id"`
	PatientName      string   `json:"patient_name"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	AntibioticActive bool     `json:"antibiotic_active"`
	LastNote         string   `json:"last_note,omitempty"`
}

type WorkloadResponse struct {
	AvailableMinutes int     `json:"available_minutes"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	LoadPercent      float64 `json:"load_percent"`
}

type RouteResponse struct {
	StaffID      string              `json:"staff_id"`
	StaffName    string              `json:"staff_name"`
	Date         string              `json:"date"`
	Stops        []RouteStopResponse `json:"stops"`
	Workload     WorkloadResponse    `json:"workload"`
	OverCapacity bool                `json:"over_capacity"`
}

type CommitRouteRequest struct {
	Date       string   `json:"date"`
	PatientIDs []string `json:"patient_ids"`
	CanEdit    bool     `json:"can_edit"`
}

type CommitRouteResponse struct {
	Committed bool `json:"committed"`
}
