// Package types defines the shared data structures for the dungeonrun engine.
// It holds plain data only.
package types

import "github.com/zyedidia/generic/mapset"

// PlayerStats is the player's mutable combat record.
type PlayerStats struct {
	Health int `yaml:"health"`
	Attack int `yaml:"attack"`
}

// ArtifactEffect names what an artifact does when discovered.
type ArtifactEffect string

const (
	EffectIncreasesHealth ArtifactEffect = "increases_health"
	EffectEnhancesAttack  ArtifactEffect = "enhances_attack"
	EffectSolvesPuzzles   ArtifactEffect = "solves_puzzles"
)

// Artifact is a single-use collectible.
type Artifact struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Power       int            `yaml:"power"`
	Effect      ArtifactEffect `yaml:"effect"`
}

// ChallengeType is the room-level event kind.
type ChallengeType string

const (
	ChallengeNone    ChallengeType = "none"
	ChallengePuzzle  ChallengeType = "puzzle"
	ChallengeTrap    ChallengeType = "trap"
	ChallengeLibrary ChallengeType = "library"
)

// Outcome holds the messages and health change for a puzzle or trap.
type Outcome struct {
	Success     string `yaml:"success"`
	Failure     string `yaml:"failure"`
	HealthDelta int    `yaml:"health_delta"`
}

// Room is one entry of the fixed room sequence.
type Room struct {
	Name      string        `yaml:"name"`
	Item      string        `yaml:"item,omitempty"` // empty when the room holds nothing
	Challenge ChallengeType `yaml:"challenge"`
	Outcome   *Outcome      `yaml:"outcome,omitempty"`
}

// PathChoice is the player's answer at the fork before combat.
type PathChoice int

const (
	PathSafe PathChoice = iota // "1" or anything unrecognized
	PathDark                   // "2"
)

// GameDef holds the tunables loaded from content.
type GameDef struct {
	Title            string
	Intro            string
	StartHealth      int
	StartAttack      int
	MonsterHealth    int
	MonsterDamageMin int
	MonsterDamageMax int
	Treasure         string
	TreasureChance   int // percent
	PathDamageMin    int
	PathDamageMax    int
	ArtifactChance   int    // percent
	ChallengePolicy  string // "random", "succeed", "fail"
	LibraryDraw      int
	WisdomItem       string
}

// State is the complete mutable game state for one run.
type State struct {
	Player       PlayerStats
	Inventory    []string
	Clues        mapset.Set[string]
	Artifacts    map[string]Artifact // catalog; entries are removed on discovery
	BypassTokens int
	RNGSeed      int64
}

// Event is emitted by the engine for every state transition worth tracing.
type Event struct {
	Type string         `yaml:"type"`
	Data map[string]any `yaml:"data,omitempty"`
}

// Result is the output of a single orchestrator call.
type Result struct {
	Events []Event
	Output []string
}

// CombatRound records one exchange of blows.
type CombatRound struct {
	PlayerDamage  int `yaml:"player_damage"`
	MonsterHealth int `yaml:"monster_health"`
	MonsterDamage int `yaml:"monster_damage"` // zero when the monster fell this round
	PlayerHealth  int `yaml:"player_health"`
}

// CombatResult is the outcome of one fight.
type CombatResult struct {
	Rounds   []CombatRound
	Won      bool
	Treasure string // empty when nothing was awarded
}

// ArtifactOutcome describes what an artifact discovery changed.
type ArtifactOutcome struct {
	Found      bool
	Artifact   Artifact
	HealthGain int
	AttackGain int
	Stats      PlayerStats
}

// ClueOutcome reports a clue and whether it was new.
type ClueOutcome struct {
	Clue string
	New  bool
}

// RoomResult is the outcome of processing one room.
type RoomResult struct {
	Index         int
	Room          Room
	Challenged    bool // a puzzle or trap was resolved (drawn or bypassed)
	Success       bool
	Bypassed      bool
	HealthDelta   int
	Item          string
	Clues         []ClueOutcome
	BypassGranted bool
	Stats         PlayerStats
	Ended         bool
}

// Summary is the end-of-run report.
type Summary struct {
	Stats     PlayerStats
	Inventory []string
	Clues     []string
}
