package dto

type ScheduleEntryResponse struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	VisitType   string `json:"visit_type"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type ScheduleResponse struct {
	Date   string                  `json:"date"`
	Visits []ScheduleEntryResponse `json:"visits"`
}
