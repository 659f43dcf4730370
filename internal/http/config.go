package http

import (
	"github.com/mlahtinen/fitcomp/internal/state"
)

// RouterConfig carries every dependency the router needs. Optional
// fields may be nil; the matching routes are then not registered.
type RouterConfig struct {
	Version string

	Database Pinger

	Programs    *state.ProgramState
	Calendar    *state.CalendarState
	WorkoutLogs *state.WorkoutLogState

	ExerciseFinder ExerciseFinder

	GymSearcher GymSearcher
	Favorites   FavoriteGymStore
}
