// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"time"

	"github.com/google/uuid"
)

type JobPosting struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Salary     string    `json:"salary"`
	Type       string    `json:"type"`   // Full-time, Contract, Event-based
	Applicants int       `json:"applicants"`
	Status     string    `json:"status"` // ACTIVE, FILLED, DRAFT
	Platform   string    `json:"platform"`
	PostedDate time.Time `json:"posted_date"`
}

type Contract struct {
	ID       uuid.UUID `json:"id"`
	ChefName string    `json:"chef_name"`
	Type     string    `json:"type"`
	Status   string    `json:"status"` // SIGNED, PENDING, EXPIRED
	Value    float64   `json:"value"`
	Date     time.Time `json:"date"`
}
