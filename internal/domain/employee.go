package domain

import "time"

type Employee struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
