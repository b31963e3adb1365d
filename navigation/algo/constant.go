package algo

import "errors"

const (
	// default walking speed in m/s
	WALKING_SPEED = 1.4

	// hard cap on A* expansions, the dead-end circuit breaker against
	// disconnected or malformed graphs
	MAX_ITERATIONS = 10_000

	// cost multiplier for indoor edges when the walker prefers outdoor
	INDOOR_PENALTY = 1.3
	// cost multiplier for outdoor edges when the walker prefers indoor
	OUTDOOR_PENALTY = 1.2
	// added cost per meter of elevation change
	CLIMB_COST_PER_METER = 2.0
	// multiplier on climbing edges under the accessibility preference
	ACCESSIBLE_CLIMB_PENALTY = 1.5
	// multiplier on non-accessible edges under the accessibility preference
	INACCESSIBLE_PENALTY = 3.0

	// elevation change treated as stairs by the avoid-stairs filter
	STAIRS_ELEVATION_LIMIT = 0.5
	// elevation change that triggers the accessible climbing penalty
	ACCESSIBLE_ELEVATION_LIMIT = 0.3
)

var (
	// no path exists between the endpoints (includes hitting the iteration cap)
	ErrNoPath = errors.New("no path between nodes")
)
