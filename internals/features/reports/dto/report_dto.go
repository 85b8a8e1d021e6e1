package dto

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TypeCount struct {
	SessionType string `json:"session_type"`
	Count       int64  `json:"count"`
}

type SummaryResponse struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"by_status"`
	ByType   []TypeCount   `json:"by_type"`
}

type MonthlyRow struct {
	Month        string `json:"month"`
	SessionType  string `json:"session_type"`
	Count        int64  `json:"count"`
	PaidCount    int64  `json:"paid_count"`
	PendingCount int64  `json:"pending_count"`
}

type TeacherRow struct {
	TeacherID    string `json:"teacher_id"`
	TeacherName  string `json:"teacher_name"`
	InPacte      bool   `json:"in_pacte"`
	Total        int64  `json:"total"`
	RCD          int64  `json:"rcd"`
	DevoirsFaits int64  `json:"devoirs_faits"`
	HSE          int64  `json:"hse"`
	Autre        int64  `json:"autre"`
	Paid         int64  `json:"paid"`
}
