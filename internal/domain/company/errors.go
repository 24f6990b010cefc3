package company

import "errors"

var (
	ErrSettingsNotFound     = errors.New("work settings not found for company")
	ErrWorkLocationNotFound = errors.New("work location not found")
	ErrInvalidBreakWindow   = errors.New("break window start must be before end")
	ErrInvalidClockTime     = errors.New("clock time must be in HH:MM format")
	ErrInvalidTimezone      = errors.New("timezone is not a valid IANA zone name")
)
