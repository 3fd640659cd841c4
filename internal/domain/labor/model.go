package labor

import "time"

const (
	// HoursPerDay is the regular working day the daily rate pays for.
	HoursPerDay = 8.0
	// OvertimeMultiplier applies to every overtime hour.
	OvertimeMultiplier = 1.5
)

// Record is a timesheet entry for one worker on one day.
type Record struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	WorkerName string    `json:"worker_name"`
	Role       string    `json:"role,omitempty"`
	Hours      float64   `json:"hours"`
	Overtime   float64   `json:"overtime"`
	Date       time.Time `json:"date"`
	DailyRate  float64   `json:"daily_rate"`
	CreatedAt  time.Time `json:"created_at"`
}

// Cost is the wage owed for the entry:
// dailyRate*(hours/8) + overtime*(dailyRate/8)*1.5.
func (r Record) Cost() float64 {
	hourly := r.DailyRate / HoursPerDay
	return r.DailyRate*(r.Hours/HoursPerDay) + r.Overtime*hourly*OvertimeMultiplier
}
