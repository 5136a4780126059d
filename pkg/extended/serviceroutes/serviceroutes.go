// Package serviceroutes groups trips into service routes. A service route
// is the set of trips sharing one ordered stop pattern (or its exact
// reverse), a finer grouping than route_id and a coarser one than trip_id.
package serviceroutes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tadashi-aikawa/hibou/pkg/gtfsjp"
	"github.com/tadashi-aikawa/hibou/pkg/util"
)

// Strategy selects the pattern key trips are grouped by.
type Strategy string

const (
	StrategyStopNames             Strategy = "stop_names"
	StrategyStopIDs               Strategy = "stop_ids"
	StrategyFirstAndLastStopNames Strategy = "first_and_last_stop_names"
	StrategyIdentityTable         Strategy = "identity_table"
)

// Strategies returns every strategy name, for CLI help and validation.
func Strategies() []string {
	return []string{
		string(StrategyStopNames),
		string(StrategyStopIDs),
		string(StrategyFirstAndLastStopNames),
		string(StrategyIdentityTable),
	}
}

func ParseStrategy(value string) (Strategy, error) {
	if !util.ContainsString(Strategies(), value) {
		return "", fmt.Errorf("unknown service route identify strategy %q", value)
	}

	return Strategy(value), nil
}

type ServiceRoute struct {
	ID          int    `csv:"service_route_id" json:"service_route_id"`
	DirectionID int8   `csv:"direction_id" json:"direction_id"`
	Name        string `csv:"service_route_name" json:"service_route_name"`

	PatternKey string `csv:"-" json:"-"`
}

type TripServiceRoute struct {
	TripID      string `csv:"trip_id" json:"trip_id"`
	ID          int    `csv:"service_route_id" json:"service_route_id"`
	DirectionID int8   `csv:"service_route_direction_id" json:"service_route_direction_id"`
}

var ErrEmptyTrip = errors.New("trip has no stop time details")

// UnknownServiceRouteError is returned when the identity table has no row
// for the pattern a trip runs.
type UnknownServiceRouteError struct {
	TripID string
	Key    string
}

func (e *UnknownServiceRouteError) Error() string {
	return fmt.Sprintf("no service route identity for trip %s (pattern %q)", e.TripID, e.Key)
}

type patternMatch struct {
	serviceRouteID int
	directionID    int8
}

// Generator assigns service routes to trips one at a time and accumulates
// the distinct routes it has seen. Feed it trips in ascending trip_id order
// and the assigned ids are a pure function of the feed. Not safe for
// concurrent use.
type Generator struct {
	strategy Strategy
	identity *IdentityIndex

	matches map[string]patternMatch
	seen    map[int]bool
	routes  []ServiceRoute
}

func NewGenerator(strategy Strategy, identity *IdentityIndex) (*Generator, error) {
	if strategy == StrategyIdentityTable && identity == nil {
		return nil, errors.New("identity_table strategy requires an identity table")
	}

	return &Generator{
		strategy: strategy,
		identity: identity,
		matches:  map[string]patternMatch{},
		seen:     map[int]bool{},
	}, nil
}

// Generate resolves the service route of one trip from its ordered stop
// time details. The first pattern observed for a new route becomes
// direction 0 and takes the next sequential id; the reverse of a known
// pattern resolves to the same id as direction 1. Calling it again with a
// pattern already seen returns the id assigned first time round.
func (g *Generator) Generate(tripID string, details []gtfsjp.StopTimeDetail) (ServiceRoute, error) {
	if len(details) == 0 {
		return ServiceRoute{}, fmt.Errorf("trip %s: %w", tripID, ErrEmptyTrip)
	}

	atoms := g.strategy.patternAtoms(details)

	if g.strategy == StrategyIdentityTable {
		return g.generateFromIdentity(tripID, identityKey(atoms))
	}

	key := patternKey(atoms)

	if match, ok := g.matches[key]; ok {
		route := g.routes[match.serviceRouteID-1]
		route.DirectionID = match.directionID
		route.PatternKey = key

		return route, nil
	}

	route := ServiceRoute{
		ID:          len(g.routes) + 1,
		DirectionID: 0,
		Name:        fmt.Sprintf("%s - %s", details[0].StopName, details[len(details)-1].StopName),
		PatternKey:  key,
	}
	g.routes = append(g.routes, route)

	g.matches[key] = patternMatch{serviceRouteID: route.ID, directionID: 0}
	// A palindromic pattern is its own reverse and stays direction 0
	if reversed := patternKey(reverseAtoms(atoms)); reversed != key {
		g.matches[reversed] = patternMatch{serviceRouteID: route.ID, directionID: 1}
	}

	return route, nil
}

func (g *Generator) generateFromIdentity(tripID string, key string) (ServiceRoute, error) {
	row, ok := g.identity.Lookup(key)
	if !ok {
		return ServiceRoute{}, &UnknownServiceRouteError{TripID: tripID, Key: key}
	}

	if !g.seen[row.ServiceRouteID] {
		g.seen[row.ServiceRouteID] = true
		g.routes = append(g.routes, g.identity.Definition(row.ServiceRouteID))
	}

	return ServiceRoute{
		ID:          row.ServiceRouteID,
		DirectionID: row.DirectionID,
		Name:        row.ServiceRouteName,
		PatternKey:  key,
	}, nil
}

// All returns every distinct service route generated so far, in no
// particular order.
func (g *Generator) All() []ServiceRoute {
	routes := make([]ServiceRoute, len(g.routes))
	copy(routes, g.routes)

	return routes
}

func (s Strategy) patternAtoms(details []gtfsjp.StopTimeDetail) []string {
	switch s {
	case StrategyStopIDs:
		atoms := make([]string, len(details))
		for i, detail := range details {
			atoms[i] = detail.StopID
		}

		return atoms
	case StrategyFirstAndLastStopNames:
		return []string{details[0].StopName, details[len(details)-1].StopName}
	default:
		// stop_names and identity_table both key on the full name sequence
		atoms := make([]string, len(details))
		for i, detail := range details {
			atoms[i] = detail.StopName
		}

		return atoms
	}
}

// patternKey joins atoms into the canonical registry key. The unit
// separator never occurs in a stop name or id, so patterns that differ only
// in where a comma falls inside an atom stay distinct.
func patternKey(atoms []string) string {
	return strings.Join(atoms, "\x1f")
}

// identityKey joins atoms the way an identity table's stop_pattern column
// writes them.
func identityKey(atoms []string) string {
	return strings.Join(atoms, ",")
}

func reverseAtoms(atoms []string) []string {
	reversed := make([]string, len(atoms))
	for i, atom := range atoms {
		reversed[len(atoms)-1-i] = atom
	}

	return reversed
}
