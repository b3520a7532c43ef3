package dashboard

import (
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
)

// InternDashboard is the intern's landing view: internship progress plus
// this month's attendance and overall logbook standing.
type InternDashboard struct {
	Internship *internship.InternshipResponse `json:"internship"`
	Progress   *internship.Progress           `json:"progress"`
	Presence   *presence.Stats                `json:"presence"`
	Logbook    *logbook.Stats                 `json:"logbook"`
	Today      *presence.TodayResponse        `json:"today"`
}

// ReviewerDashboard gives mentors and kadiv a queue overview.
type ReviewerDashboard struct {
	ActiveInterns      int `json:"active_interns"`
	PendingPermissions int `json:"pending_permissions"`
	PendingLogbooks    int `json:"pending_logbooks"`
	CheckedInToday     int `json:"checked_in_today"`
}
