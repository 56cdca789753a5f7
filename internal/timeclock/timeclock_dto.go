package timeclock

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ListEntriesRequest struct {
	EmployeeID string `form:"employee_id"`
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
}

type BreakResponse struct {
	ID      string  `json:"id"`
	StartAt string  `json:"start_at"`
	EndAt   *string `json:"end_at,omitempty"`
}

type ClockEntryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	EntryDate     string          `json:"entry_date"`
	ClockIn       string          `json:"clock_in"`
	ClockOut      *string         `json:"clock_out,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Breaks        []BreakResponse `json:"breaks"`
	TotalMinutes  int64           `json:"total_minutes"`
	BreakMinutes  int64           `json:"break_minutes"`
	WorkedMinutes int64           `json:"worked_minutes"`
}

type StatusResponse struct {
	ClockedIn bool                `json:"clocked_in"`
	OnBreak   bool                `json:"on_break"`
	OpenEntry *ClockEntryResponse `json:"open_entry,omitempty"`
}

type DaySummary struct {
	Date         string               `json:"date"`
	Entries      []ClockEntryResponse `json:"entries"`
	TotalMinutes int64                `json:"total_minutes"`
}

type WeekSummaryResponse struct {
	WeekStart        string       `json:"week_start"`
	WeekEnd          string       `json:"week_end"`
	Days             []DaySummary `json:"days"`
	WeekTotalMinutes int64        `json:"week_total_minutes"`
}
