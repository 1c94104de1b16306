package domain

import "time"

type Company struct {
	ID           string
	Name         string
	VisitAddress string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Size         CompanySize
	CreatedAt    time.Time
}
