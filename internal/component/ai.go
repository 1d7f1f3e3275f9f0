package component

import "roguecore/internal/ecs"

const CAI ecs.ComponentType = 4

// AIBehavior describes how a non-player viewer reacts to what it sees.
type AIBehavior uint8

const (
	BehaviorStationary AIBehavior = iota // never moves
	BehaviorChase                        // steps toward a seen target
	BehaviorCowardly                     // steps away from a seen target
)

func (b AIBehavior) String() string {
	switch b {
	case BehaviorChase:
		return "chase"
	case BehaviorCowardly:
		return "cowardly"
	default:
		return "stationary"
	}
}

// AI drives an entity that has a Position and a Vision. It only reacts to
// targets inside its current field of view.
type AI struct {
	Behavior AIBehavior
}

func (AI) Type() ecs.ComponentType { return CAI }
