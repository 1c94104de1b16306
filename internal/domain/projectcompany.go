package domain

import "time"

// ProjectCompanyLink is the hour budget a project has been granted for a
// specific client company. Exactly one of AvailableHours / Unlimited is
// meaningful: when Unlimited is true, AvailableHours is ignored.
type ProjectCompanyLink struct {
	ProjectID      string
	CompanyID      string
	AvailableHours float64
	Unlimited      bool
	CreatedAt      time.Time
}
