// Package shrinkage computes effective work hours for an attendance
// session: logged minutes minus configured break windows and a per-break
// transition buffer, plus the shrinkage percentage derived from the
// deductions. All functions are pure and never return an error; malformed
// break windows contribute zero minutes and degenerate intervals are the
// caller's responsibility to reject (see attendance.ErrInvalidInterval).
//
// The transition buffer counts only breaks that are active and apply to the
// check-in weekday, the same filter the overlap pass uses. Callers that need
// a different buffer supply an explicit override via Options.
package shrinkage

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTransitionBufferMinutes is the context-switch overhead charged per
// applicable break when no override is configured.
const DefaultTransitionBufferMinutes = 5.0

// BreakTiming is a company-configured break window, wall-clock HH:MM in the
// company timezone. Days holds weekday names ("Monday", ...); an empty list
// means the break applies every day.
type BreakTiming struct {
	Name      string   `json:"name"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Days      []string `json:"days,omitempty"`
	IsActive  bool     `json:"is_active"`
}

// AppliesOn reports whether the break is active and applies to the given
// weekday.
func (b BreakTiming) AppliesOn(day time.Weekday) bool {
	if !b.IsActive {
		return false
	}
	if len(b.Days) == 0 {
		return true
	}
	name := day.String()
	for _, d := range b.Days {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// Options tunes CalculateEffectiveWorkHours.
type Options struct {
	// Location anchors HH:MM break windows to the check-in's calendar day.
	// Nil means UTC. Pass the company's IANA zone so results do not depend
	// on the server's locale.
	Location *time.Location

	// BufferPerBreakMinutes, when non-nil, replaces the default 5-minute
	// per-break buffer. An explicit zero disables the buffer.
	BufferPerBreakMinutes *float64

	// TransitionBufferMinutes, when non-nil, overrides the computed total
	// buffer entirely.
	TransitionBufferMinutes *float64

	// OtherDeductionsMinutes is added to the deductions on top of breaks
	// and the transition buffer.
	OtherDeductionsMinutes float64
}

// Result is the calculator's output. Hour and percentage fields are rounded
// to two decimals for display; minute fields keep full precision.
type Result struct {
	TotalLoggedMinutes   float64 `json:"total_logged_minutes"`
	TotalLoggedHours     float64 `json:"total_logged_hours"`
	BreakMinutes         float64 `json:"break_minutes"`
	TransitionBuffer     float64 `json:"transition_buffer"`
	TotalDeductions      float64 `json:"total_deductions"`
	EffectiveWorkMinutes float64 `json:"effective_work_minutes"`
	EffectiveWorkHours   float64 `json:"effective_work_hours"`
	ShrinkagePercentage  float64 `json:"shrinkage_percentage"`
}

// CalculateBreakDuration sums the overlap, in minutes, between the work
// interval [checkIn, checkOut] and each applicable break window. Windows are
// anchored to checkIn's calendar day in loc (UTC when nil); a window that
// falls outside the work interval, or whose HH:MM strings do not parse,
// contributes zero.
func CalculateBreakDuration(breakTimings []BreakTiming, checkIn, checkOut time.Time, loc *time.Location) float64 {
	if loc == nil {
		loc = time.UTC
	}
	local := checkIn.In(loc)

	var total float64
	for _, bt := range breakTimings {
		if !bt.AppliesOn(local.Weekday()) {
			continue
		}

		startH, startM, ok := parseClock(bt.StartTime)
		if !ok {
			continue
		}
		endH, endM, ok := parseClock(bt.EndTime)
		if !ok {
			continue
		}

		breakStart := time.Date(local.Year(), local.Month(), local.Day(), startH, startM, 0, 0, loc)
		breakEnd := time.Date(local.Year(), local.Month(), local.Day(), endH, endM, 0, 0, loc)

		effectiveStart := breakStart
		if checkIn.After(effectiveStart) {
			effectiveStart = checkIn
		}
		effectiveEnd := breakEnd
		if checkOut.Before(effectiveEnd) {
			effectiveEnd = checkOut
		}

		if effectiveEnd.After(effectiveStart) {
			total += effectiveEnd.Sub(effectiveStart).Minutes()
		}
	}

	return total
}

// CalculateShrinkage returns the share of logged time lost to deductions as
// a percentage clamped to [0, 100]. Zero or negative logged minutes yield 0
// rather than a division error.
func CalculateShrinkage(totalLoggedMinutes, breakMinutes, otherDeductionsMinutes float64) float64 {
	if totalLoggedMinutes <= 0 {
		return 0
	}
	pct := (breakMinutes + otherDeductionsMinutes) / totalLoggedMinutes * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// CalculateEffectiveWorkHours derives the full shrinkage result for one work
// interval. A checkOut before checkIn is not rejected here and propagates as
// negative logged time; services validate the interval before calling.
func CalculateEffectiveWorkHours(checkIn, checkOut time.Time, breakTimings []BreakTiming, opts Options) Result {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	totalLoggedMinutes := checkOut.Sub(checkIn).Minutes()
	breakMinutes := CalculateBreakDuration(breakTimings, checkIn, checkOut, loc)

	perBreak := DefaultTransitionBufferMinutes
	if opts.BufferPerBreakMinutes != nil {
		perBreak = *opts.BufferPerBreakMinutes
	}

	var transitionBuffer float64
	if opts.TransitionBufferMinutes != nil {
		transitionBuffer = *opts.TransitionBufferMinutes
	} else {
		weekday := checkIn.In(loc).Weekday()
		for _, bt := range breakTimings {
			if bt.AppliesOn(weekday) {
				transitionBuffer += perBreak
			}
		}
	}

	totalDeductions := breakMinutes + transitionBuffer + opts.OtherDeductionsMinutes

	effectiveMinutes := totalLoggedMinutes - totalDeductions
	if effectiveMinutes < 0 {
		effectiveMinutes = 0
	}

	return Result{
		TotalLoggedMinutes:   totalLoggedMinutes,
		TotalLoggedHours:     round2(totalLoggedMinutes / 60),
		BreakMinutes:         breakMinutes,
		TransitionBuffer:     transitionBuffer,
		TotalDeductions:      totalDeductions,
		EffectiveWorkMinutes: effectiveMinutes,
		EffectiveWorkHours:   round2(effectiveMinutes / 60),
		ShrinkagePercentage:  round2(CalculateShrinkage(totalLoggedMinutes, breakMinutes, transitionBuffer+opts.OtherDeductionsMinutes)),
	}
}

// parseClock parses an "HH:MM" wall-clock string.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
