package domain

import "time"

// GoalPeriod is the horizon a savings target applies to.
type GoalPeriod string

const (
	PeriodMonth1  GoalPeriod = "month1"
	PeriodMonth3  GoalPeriod = "month3"
	PeriodMonth6  GoalPeriod = "month6"
	PeriodMonth12 GoalPeriod = "month12"
)

// PeriodBand is the inclusive target range allowed for a period, in coins.
type PeriodBand struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// GoalBands maps each period to its allowed target band.
var GoalBands = map[GoalPeriod]PeriodBand{
	PeriodMonth1:  {Min: 500, Max: 2_000},
	PeriodMonth3:  {Min: 1_500, Max: 6_000},
	PeriodMonth6:  {Min: 3_000, Max: 12_000},
	PeriodMonth12: {Min: 6_000, Max: 24_000},
}

// SavingsGoal is the active target. It is replaced wholesale on
// re-selection, never partially mutated.
type SavingsGoal struct {
	TargetAmount int64      `json:"target_amount"`
	Period       GoalPeriod `json:"period"`
	SetAt        time.Time  `json:"set_at"`
}
