package presence

import (
	"time"

	"github.com/simagang/simagang-backend-go/internal/pkg/validator"
)

type PresenceResponse struct {
	ID           string `json:"id"`
	InternshipID string `json:"internship_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`

	CheckIn          *time.Time `json:"check_in,omitempty"`
	CheckInPhoto     *string    `json:"check_in_photo,omitempty"`
	CheckInLatitude  *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude *float64   `json:"check_in_longitude,omitempty"`
	CheckInLocation  *string    `json:"check_in_location,omitempty"`

	CheckOut          *time.Time `json:"check_out,omitempty"`
	CheckOutPhoto     *string    `json:"check_out_photo,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	CheckOutLocation  *string    `json:"check_out_location,omitempty"`

	UserFullName *string   `json:"user_full_name,omitempty"`
	UserPosition *string   `json:"user_position,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p Presence) ToResponse(checkInPhotoURL, checkOutPhotoURL *string) PresenceResponse {
	return PresenceResponse{
		ID:                p.ID,
		InternshipID:      p.InternshipID,
		Date:              p.Date.Format("2006-01-02"),
		Status:            string(p.Status),
		CheckIn:           p.CheckIn,
		CheckInPhoto:      checkInPhotoURL,
		CheckInLatitude:   p.CheckInLatitude,
		CheckInLongitude:  p.CheckInLongitude,
		CheckInLocation:   p.CheckInLocation,
		CheckOut:          p.CheckOut,
		CheckOutPhoto:     checkOutPhotoURL,
		CheckOutLatitude:  p.CheckOutLatitude,
		CheckOutLongitude: p.CheckOutLongitude,
		CheckOutLocation:  p.CheckOutLocation,
		UserFullName:      p.UserFullName,
		UserPosition:      p.UserPosition,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// TodayResponse is the intern's attendance view for the current day. Record
// is nil when no check-in has happened yet.
type TodayResponse struct {
	Date            string            `json:"date"`
	CheckedIn       bool              `json:"checked_in"`
	CheckedOut      bool              `json:"checked_out"`
	OnApprovedLeave bool              `json:"on_approved_leave"`
	Record          *PresenceResponse `json:"record,omitempty"`
}

type CheckRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Location  *string  `json:"location"`
}

func (r CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude is required"})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude is required"})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
