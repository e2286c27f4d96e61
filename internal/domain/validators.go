package domain

import (
	"fmt"
	"math"
	"strings"
)

// MaxTextLength caps user-entered free text after sanitization.
const MaxTextLength = 100

// MaxRewardAmount is the largest single earnings credit accepted.
const MaxRewardAmount = 10_000

// ValidateSavingsGoal checks that period is a known horizon and amount
// falls inside its band.
func ValidateSavingsGoal(amount int64, period GoalPeriod) error {
	band, ok := GoalBands[period]
	if !ok {
		return ErrValidation(fmt.Sprintf("unknown savings period: %s", period))
	}
	if amount < band.Min || amount > band.Max {
		return ErrValidation(fmt.Sprintf("target amount %d out of range [%d, %d] for period %s",
			amount, band.Min, band.Max, period))
	}
	return nil
}

// ValidateGameID checks that id is in the game catalog.
func ValidateGameID(id GameID) error {
	if !KnownGame(id) {
		return ErrValidation(fmt.Sprintf("unknown game: %s", id))
	}
	return nil
}

// ValidateLessonID checks that id exists in the curriculum.
func ValidateLessonID(id string) error {
	if !KnownLesson(id) {
		return ErrValidation(fmt.Sprintf("unknown lesson: %s", id))
	}
	return nil
}

// ValidateRewardAmount checks that amount is a finite number in
// [0, MaxRewardAmount]. It takes a float so callers can validate decoded
// JSON numbers before narrowing to an integer.
func ValidateRewardAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrValidation("reward amount must be a finite number")
	}
	if amount < 0 || amount > MaxRewardAmount {
		return ErrValidation(fmt.Sprintf("reward amount %v out of range [0, %d]", amount, MaxRewardAmount))
	}
	return nil
}

// SanitizeText trims whitespace, strips angle brackets and truncates to
// MaxTextLength runes. It never fails.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	runes := []rune(s)
	if len(runes) > MaxTextLength {
		return string(runes[:MaxTextLength])
	}
	return s
}
