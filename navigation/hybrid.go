package navigation

import (
	"context"
	"fmt"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

// BoundingBox is the rectangular campus boundary used to classify points as
// on- or off-campus. Not a polygon; good enough for strategy dispatch.
type BoundingBox struct {
	North float64 `json:"north" yaml:"north"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	West  float64 `json:"west" yaml:"west"`
}

func (b BoundingBox) Contains(loc geo.Location) bool {
	return loc.Lat <= b.North && loc.Lat >= b.South &&
		loc.Lon <= b.East && loc.Lon >= b.West
}

// Strategy is the per-request routing plan picked from the start/end
// classification.
type Strategy int

const (
	// both points on campus, pure graph search
	StrategyInternal Strategy = iota
	// start off campus, end on campus: external leg to a gateway, then graph
	StrategyInbound
	// start on campus, end off campus: graph to a gateway, then external leg
	StrategyOutbound
	// both points off campus, pure external routing
	StrategyExternal
)

var strategyNames = map[Strategy]string{
	StrategyInternal: "internal",
	StrategyInbound:  "inbound",
	StrategyOutbound: "outbound",
	StrategyExternal: "external",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// InternalRouter is what the hybrid router needs from the on-campus engine.
type InternalRouter interface {
	FindRoute(start, end geo.Location, opts RoutingOptions) RouteResult
	FindNearestNode(loc geo.Location, types ...graph.NodeType) (*graph.Node, bool)
}

// HybridRouter stitches on-campus graph routing and off-campus external
// routing into one continuous route. Stateless across requests.
type HybridRouter struct {
	internal      InternalRouter
	external      ExternalRouter
	box           BoundingBox
	seamThreshold float64
}

func NewHybridRouter(internal InternalRouter, external ExternalRouter, box BoundingBox, seamThreshold float64) *HybridRouter {
	if seamThreshold <= 0 {
		seamThreshold = DefaultSeamThreshold
	}
	return &HybridRouter{
		internal:      internal,
		external:      external,
		box:           box,
		seamThreshold: seamThreshold,
	}
}

// ClassifyStrategy picks the routing plan for a start/end pair.
func (h *HybridRouter) ClassifyStrategy(start, end geo.Location) Strategy {
	startInside := h.box.Contains(start)
	endInside := h.box.Contains(end)
	switch {
	case startInside && endInside:
		return StrategyInternal
	case !startInside && endInside:
		return StrategyInbound
	case startInside && !endInside:
		return StrategyOutbound
	default:
		return StrategyExternal
	}
}

// FindRoute dispatches on the strategy. Two-leg strategies that fail to
// stitch fall back to a single whole-trip external route; a RouteError only
// reaches the caller when even that fallback fails.
func (h *HybridRouter) FindRoute(ctx context.Context, start, end geo.Location, opts RoutingOptions) RouteResult {
	strategy := h.ClassifyStrategy(start, end)
	log.Debugf("hybrid route %v -> %v via %s", start, end, strategy)
	switch strategy {
	case StrategyInternal:
		if res, ok := h.internal.FindRoute(start, end, opts).(Success); ok {
			return res
		}
		// degraded: the external router will trace roads outside the
		// campus boundary for an on-campus trip
		return h.externalRoute(ctx, start, end, opts)

	case StrategyInbound:
		gateway, ok := h.gateway(start)
		if !ok {
			return RouteError{Reason: "campus graph has no gateway node"}
		}
		leg1 := h.externalRoute(ctx, start, gateway.Location, opts)
		leg2 := h.internal.FindRoute(gateway.Location, end, opts)
		if res, ok := Stitch(leg1, leg2, h.seamThreshold).(Success); ok {
			return res
		}
		return h.externalRoute(ctx, start, end, opts)

	case StrategyOutbound:
		gateway, ok := h.gateway(end)
		if !ok {
			return RouteError{Reason: "campus graph has no gateway node"}
		}
		leg1 := h.internal.FindRoute(start, gateway.Location, opts)
		leg2 := h.externalRoute(ctx, gateway.Location, end, opts)
		if res, ok := Stitch(leg1, leg2, h.seamThreshold).(Success); ok {
			return res
		}
		return h.externalRoute(ctx, start, end, opts)

	default:
		return h.externalRoute(ctx, start, end, opts)
	}
}

// gateway finds the hand-off node between external and internal legs: the
// entrance nearest to the off-campus point, falling back to any node type.
func (h *HybridRouter) gateway(p geo.Location) (*graph.Node, bool) {
	if n, ok := h.internal.FindNearestNode(p, graph.NodeTypeEntrance); ok {
		return n, true
	}
	return h.internal.FindNearestNode(p)
}

func (h *HybridRouter) externalRoute(ctx context.Context, start, end geo.Location, opts RoutingOptions) RouteResult {
	route, err := h.external.Route(ctx, start, end, opts.WalkingSpeed)
	if err != nil {
		log.Warnf("external routing failed: %v", err)
		return RouteError{Reason: fmt.Sprintf("external routing: %v", err)}
	}
	return Success{Route: route}
}
