package attendance

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type CheckOutRequest struct {
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	WorkDone    *string  `json:"work_done"`
	ProjectName *string  `json:"project_name"`
	Meetings    *string  `json:"meetings"`
	TodoUpdates *string  `json:"todo_updates"`
	Notes       *string  `json:"notes"`
}

type StartBreakRequest struct {
	Type string `json:"type" binding:"required"`
}

type CheckInResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	LocationName string `json:"location_name"`
	CheckInTime  string `json:"check_in_time"`
}

type CheckOutResponse struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	HoursWorked  float64 `json:"hours_worked"`
	CheckOutTime string  `json:"check_out_time"`
}

type StartBreakResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	DurationMin int    `json:"duration_min"`
	StartTime   string `json:"start_time"`
}

type EndBreakResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	EndTime string `json:"end_time"`
}

type BreakResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	DurationMin int     `json:"duration_min"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time,omitempty"`
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	AttendanceDate string          `json:"attendance_date"`
	CheckInTime    string          `json:"check_in_time"`
	CheckOutTime   *string         `json:"check_out_time,omitempty"`
	LocationName   string          `json:"location_name"`
	Status         string          `json:"status"`
	WorkDone       *string         `json:"work_done,omitempty"`
	ProjectName    *string         `json:"project_name,omitempty"`
	Meetings       *string         `json:"meetings,omitempty"`
	TodoUpdates    *string         `json:"todo_updates,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Breaks         []BreakResponse `json:"breaks"`
}
