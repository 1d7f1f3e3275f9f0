package game

import (
	"math"
	"math/rand"

	"roguecore/internal/component"
	"roguecore/internal/config"
	"roguecore/internal/generate"
)

const MaxFloors = 10

// levelConfig builds a generate.Config for the given floor number. Deeper
// floors get smaller leaves, more dark rooms and more sentries.
func levelConfig(floor int, cfg config.Config, rng *rand.Rand) *generate.Config {
	t := 0.0
	if MaxFloors > 1 {
		t = float64(floor-1) / float64(MaxFloors-1)
	}

	return &generate.Config{
		MapWidth:       cfg.Map.Width,
		MapHeight:      cfg.Map.Height,
		MinLeafSize:    cfg.Map.MinLeaf,
		MaxLeafSize:    lerpi(cfg.Map.MinLeaf*5/2, cfg.Map.MinLeaf+2, t),
		MinRoomSize:    cfg.Map.MinRoom,
		RoomPadding:    1,
		CorridorStyle:  generate.CorridorStyle((floor - 1) % 3),
		DarkRoomChance: math.Min(1, cfg.Map.DarkRooms*(1+t)),
		SentryCount:    cfg.Map.Sentries + (floor-1)/2,
		Rand:           rng,
	}
}

// sentryBehavior picks how a sentry reacts. Sentries on the first floor
// only watch.
func sentryBehavior(floor int, rng *rand.Rand) component.AIBehavior {
	if floor <= 1 {
		return component.BehaviorStationary
	}
	return component.AIBehavior(rng.Intn(3))
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}
