// internal/domain/reminder/dto.go
package reminder

type SetStatusRequest struct {
	Status Status `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

type ReminderListResponse struct {
	Reminders []Reminder `json:"reminders"`
	Stats     Stats      `json:"stats"`
}
