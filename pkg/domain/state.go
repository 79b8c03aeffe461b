package domain

// NodeID addresses a node inside a game tree's node store.
// IDs are assigned monotonically and never reused, so an ID that was
// truncated away stays invalid forever.
type NodeID uint64

// Phase is the lifecycle stage of a game.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseScoring  Phase = "scoring"
	PhaseFinished Phase = "finished"
)
