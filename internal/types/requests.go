package types

import "github.com/go-playground/validator/v10"

// UpdateShiftRequest is the body for editing one shift in the review step.
type UpdateShiftRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Title     string `json:"title" validate:"required,min=1"`
}

// SyncRequest is the body for pushing a session's shifts to Google Calendar.
type SyncRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
	TimeZone    string `json:"time_zone,omitempty"` // IANA name; defaults to the server's zone
}

// Validate validates the UpdateShiftRequest using the validator.
func (r *UpdateShiftRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SyncRequest using the validator.
func (r *SyncRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
