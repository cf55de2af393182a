package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRules indicates a non-positive roster size or fatigue cap.
	ErrInvalidRules = errors.New("roster size and game limits must be positive")
	// ErrLocationsNotUnique indicates the same location appears more than once.
	ErrLocationsNotUnique = errors.New("locations must be unique")
	// ErrNoLocations indicates there is nothing to schedule.
	ErrNoLocations = errors.New("at least one location is required")
	// ErrPlayersNotUnique indicates two players share a name.
	ErrPlayersNotUnique = errors.New("player names must be unique")
	// ErrInsufficientHomeLocations indicates fewer than half of the locations are home locations.
	ErrInsufficientHomeLocations = errors.New("at least half of the locations must be home locations")
	// ErrAvailabilityLength indicates a player's availability does not cover every location.
	ErrAvailabilityLength = errors.New("availability does not match the number of locations")
	// ErrNotEnoughPlayers indicates a location has fewer available players than a roster needs.
	ErrNotEnoughPlayers = errors.New("not enough players available")
	// ErrMaxRetriesReached indicates every attempt failed to fill all locations.
	ErrMaxRetriesReached = errors.New("unable to generate schedule after maximum retries")
	// ErrCoverageIncomplete indicates some pairs of players never share a location.
	ErrCoverageIncomplete = errors.New("not every pair of players shares a location")
	// ErrCanceled indicates the caller canceled the search.
	ErrCanceled = errors.New("schedule generation canceled")
)

// InputError is returned by Validate. It names the player or location that
// failed so callers can build their own message.
type InputError struct {
	Err      error
	Player   string
	Location string
}

func (e *InputError) Error() string {
	switch {
	case e.Player != "":
		return fmt.Sprintf("%s: player %q", e.Err, e.Player)
	case e.Location != "":
		return fmt.Sprintf("%s: location %q", e.Err, e.Location)
	default:
		return e.Err.Error()
	}
}

func (e *InputError) Unwrap() error { return e.Err }

// RetryError reports that the attempt budget ran out.
type RetryError struct {
	Attempts int
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("%s (%d attempts)", ErrMaxRetriesReached, e.Attempts)
}

func (e *RetryError) Unwrap() error { return ErrMaxRetriesReached }

// CoverageError is returned alongside a best-effort result when full pair
// coverage is required but could not be reached.
type CoverageError struct {
	Missing []Pair
}

func (e *CoverageError) Error() string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s: %d missing (%s)", ErrCoverageIncomplete, len(e.Missing), strings.Join(names, ", "))
}

func (e *CoverageError) Unwrap() error { return ErrCoverageIncomplete }
