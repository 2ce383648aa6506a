package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Shift is a shifts table row.
type Shift struct {
	ID           uuid.UUID
	ShiftID      string
	EmployeeID   string
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int32
	CreatedAt    time.Time
}

// InsertShiftParams contains the values for inserting one shift.
type InsertShiftParams struct {
	ShiftID      string
	EmployeeID   string
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int32
}

const insertShift = `
INSERT INTO shifts (shift_id, employee_id, date, start_time, end_time, break_minutes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, shift_id, employee_id, date, start_time, end_time, break_minutes, created_at
`

// InsertShift stores one imported shift.
func (q *Queries) InsertShift(ctx context.Context, arg InsertShiftParams) (Shift, error) {
	row := q.db.QueryRowContext(ctx, insertShift,
		arg.ShiftID, arg.EmployeeID, arg.Date, arg.StartTime, arg.EndTime, arg.BreakMinutes)
	var s Shift
	err := row.Scan(&s.ID, &s.ShiftID, &s.EmployeeID, &s.Date,
		&s.StartTime, &s.EndTime, &s.BreakMinutes, &s.CreatedAt)
	return s, err
}

// DeleteShiftsInPeriodParams identifies one employee's shifts in a date range.
type DeleteShiftsInPeriodParams struct {
	EmployeeID string
	From       string
	To         string
}

const deleteShiftsInPeriod = `
DELETE FROM shifts
WHERE employee_id = $1 AND date >= $2 AND date <= $3
`

// DeleteShiftsInPeriod removes an employee's shifts within the inclusive
// date range, typically before re-importing the period.
func (q *Queries) DeleteShiftsInPeriod(ctx context.Context, arg DeleteShiftsInPeriodParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteShiftsInPeriod, arg.EmployeeID, arg.From, arg.To)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListShiftsParams identifies one employee's shifts in a date range.
type ListShiftsParams struct {
	EmployeeID string
	From       string
	To         string
}

const listShifts = `
SELECT id, shift_id, employee_id, date, start_time, end_time, break_minutes, created_at
FROM shifts
WHERE employee_id = $1 AND date >= $2 AND date <= $3
ORDER BY date, start_time
`

// ListShifts returns an employee's shifts in the inclusive date range,
// ordered by date then start time.
func (q *Queries) ListShifts(ctx context.Context, arg ListShiftsParams) ([]Shift, error) {
	rows, err := q.db.QueryContext(ctx, listShifts, arg.EmployeeID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var s Shift
		if err := rows.Scan(&s.ID, &s.ShiftID, &s.EmployeeID, &s.Date,
			&s.StartTime, &s.EndTime, &s.BreakMinutes, &s.CreatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// ListEmployeesWithShiftsParams bounds the scan to a date range.
type ListEmployeesWithShiftsParams struct {
	From string
	To   string
}

const listEmployeesWithShifts = `
SELECT DISTINCT employee_id
FROM shifts
WHERE date >= $1 AND date <= $2
ORDER BY employee_id
`

// ListEmployeesWithShifts returns every employee that has at least one shift
// in the inclusive date range.
func (q *Queries) ListEmployeesWithShifts(ctx context.Context, arg ListEmployeesWithShiftsParams) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listEmployeesWithShifts, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		employees = append(employees, id)
	}
	return employees, rows.Err()
}
