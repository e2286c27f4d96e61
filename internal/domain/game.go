package domain

import "time"

// GameID identifies a mini-game in the compiled-in catalog.
type GameID string

const (
	GameRollDice      GameID = "rollDice"
	GameCoinFlip      GameID = "coinFlip"
	GameScratchCard   GameID = "scratchCard"
	GameMemoryMatch   GameID = "memoryMatch"
	GameBudgetBuilder GameID = "budgetBuilder"
	GameQuizWhiz      GameID = "quizWhiz"
)

// Gameplay tuning constants.
const (
	CooldownDuration = 5 * time.Minute
	MaxPlaysPerGame  = 5
)

// RewardRange is the inclusive payout band for a game, in coins.
type RewardRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// GameInfo describes one catalog entry. Educational games pay nothing and
// never go on cooldown.
type GameInfo struct {
	ID          GameID      `json:"id"`
	Name        string      `json:"name"`
	Reward      RewardRange `json:"reward"`
	Educational bool        `json:"educational"`
}

// Games is the fixed game catalog.
var Games = map[GameID]GameInfo{
	GameRollDice:      {ID: GameRollDice, Name: "Roll the Dice", Reward: RewardRange{Min: 5, Max: 25}},
	GameCoinFlip:      {ID: GameCoinFlip, Name: "Coin Flip", Reward: RewardRange{Min: 5, Max: 20}},
	GameScratchCard:   {ID: GameScratchCard, Name: "Scratch Card", Reward: RewardRange{Min: 10, Max: 50}},
	GameMemoryMatch:   {ID: GameMemoryMatch, Name: "Memory Match", Reward: RewardRange{Min: 10, Max: 40}},
	GameBudgetBuilder: {ID: GameBudgetBuilder, Name: "Budget Builder", Educational: true},
	GameQuizWhiz:      {ID: GameQuizWhiz, Name: "Quiz Whiz", Educational: true},
}

// KnownGame reports whether id is in the catalog.
func KnownGame(id GameID) bool {
	_, ok := Games[id]
	return ok
}

// EducationalGame reports whether id is a catalog game flagged educational.
func EducationalGame(id GameID) bool {
	info, ok := Games[id]
	return ok && info.Educational
}

// GamePlayRecord tracks per-game play state.
type GamePlayRecord struct {
	PlayCount         int        `json:"play_count"`
	CooldownExpiresAt *time.Time `json:"cooldown_expires_at,omitempty"`
}

// GameStatus is the derived availability of a game at query time.
type GameStatus struct {
	Unlocked       bool       `json:"unlocked"`
	CooldownExpiry *time.Time `json:"cooldown_expiry,omitempty"`
}
