package dto

// ScheduleEntryRequest defines the data needed to add a schedule entry.
// TimeOfDay is a 24-hour HHMM string; range is checked in the service on
// top of the tag validation.
type ScheduleEntryRequest struct {
	Event     string `json:"event" validate:"required"`
	Day       string `json:"day" validate:"required"`
	TimeOfDay string `json:"timeOfDay" validate:"required,len=4,numeric"`
}

// ScheduleEntryResponse is one schedule entry prepared for display.
type ScheduleEntryResponse struct {
	Event       string            `json:"event"`
	Day         string            `json:"day"`
	TimeDisplay string            `json:"timeDisplay"` // 12-hour clock, e.g. "3:30 PM"
	Details     string            `json:"details"`
	Links       map[string]string `json:"links"`
}
