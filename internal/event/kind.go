package event

// Kind tags an event. The set is closed: every kind the bus dispatches is
// listed here, so subscriptions can be checked exhaustively.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindEntityCreated
	KindEntityDestroyed
	KindEntityMoved
	KindTilesDiscovered
	KindVisibilityReset
	KindTurnAdvanced

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:         "invalid",
	KindEntityCreated:   "entity_created",
	KindEntityDestroyed: "entity_destroyed",
	KindEntityMoved:     "entity_moved",
	KindTilesDiscovered: "tiles_discovered",
	KindVisibilityReset: "visibility_reset",
	KindTurnAdvanced:    "turn_advanced",
}

// Valid reports whether k is one of the dispatchable kinds.
func (k Kind) Valid() bool { return k > KindInvalid && k < kindCount }

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every dispatchable kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
