// Package domain contains core business types and interfaces.
//
// This file defines the Shift domain type: one employee's work shift as
// delivered by the external scheduling system, fully normalized.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Date and clock layouts used throughout the schedule domain.
const (
	DateLayout  = "2006-01-02" // YYYY-MM-DD
	ClockLayout = "15:04"      // HH:mm, 24h
)

// =============================================================================
// Shift Domain Type
// =============================================================================

// Shift represents a single work shift for one employee.
//
// Dates and times are kept as the normalized strings the scheduling adapter
// delivers (`YYYY-MM-DD` and `HH:mm`): the compliance engine parses them on
// demand and propagates parse failures to the caller rather than validating
// syntax up front. EndTime may be numerically earlier than StartTime, which
// means the shift crosses midnight and ends on the following calendar day.
type Shift struct {
	ID           string // Opaque identifier, unique per employee and period
	EmployeeID   string // Owner of the shift
	Date         string // Calendar date the shift starts on (YYYY-MM-DD)
	StartTime    string // Local clock time (HH:mm)
	EndTime      string // Local clock time (HH:mm), may wrap past midnight
	BreakMinutes int    // Unpaid break during the shift, never negative
}

// CrossesMidnight reports whether the shift ends on the day after it starts.
// Comparison on the raw HH:mm strings is safe because both are zero-padded.
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime < s.StartTime
}

// StartInstant returns the shift's start as a wall-clock instant.
func (s *Shift) StartInstant() (time.Time, error) {
	return time.Parse(DateLayout+" "+ClockLayout, s.Date+" "+s.StartTime)
}

// =============================================================================
// Stored Shift (persistence representation)
// =============================================================================

// StoredShift is a Shift row as persisted for an imported schedule.
type StoredShift struct {
	ID           uuid.UUID // Row identifier
	ShiftID      string    // External shift identifier
	EmployeeID   string
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	CreatedAt    time.Time
}

// ToShift converts the stored row back into the engine's input type.
func (s *StoredShift) ToShift() Shift {
	return Shift{
		ID:           s.ShiftID,
		EmployeeID:   s.EmployeeID,
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		BreakMinutes: s.BreakMinutes,
	}
}

// =============================================================================
// Service Parameters
// =============================================================================

// ImportScheduleParams contains validated parameters for replacing one
// employee's stored shifts for a period.
type ImportScheduleParams struct {
	EmployeeID string  // Required: employee the shifts belong to
	PeriodFrom string  // Required: first date of the period (YYYY-MM-DD)
	PeriodTo   string  // Required: last date of the period (inclusive)
	Shifts     []Shift // The normalized shifts, may be empty
}

// SchedulePeriodParams identifies one employee's shifts within a date range.
type SchedulePeriodParams struct {
	EmployeeID string
	From       string // Inclusive (YYYY-MM-DD)
	To         string // Inclusive
}
