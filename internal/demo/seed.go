// Package demo seeds a database with sample training data for local
// development and screenshots.
package demo

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/database"
	"github.com/mlahtinen/fitcomp/internal/database/calendar"
	"github.com/mlahtinen/fitcomp/internal/database/gyms"
	"github.com/mlahtinen/fitcomp/internal/database/programs"
	"github.com/mlahtinen/fitcomp/internal/database/workoutlogs"
	"github.com/mlahtinen/fitcomp/internal/entities"
)

type demoDay struct {
	name      string
	exercises []string
}

type demoProgram struct {
	name        string
	description string
	days        []demoDay
}

// Generate replaces the database at dbPath with a freshly seeded one.
func Generate(dbPath string) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	dayIDs, err := seedPrograms(programs.NewRepository(db.DB))
	if err != nil {
		return err
	}
	if err := seedCalendar(calendar.NewRepository(db.DB), dayIDs); err != nil {
		return err
	}
	if err := seedLogs(workoutlogs.NewRepository(db.DB)); err != nil {
		return err
	}
	return seedGyms(gyms.NewRepository(db.DB))
}

// seedPrograms creates the sample programs and returns program/day ID
// pairs in creation order for the calendar seeding.
func seedPrograms(repo *programs.Repository) ([][2]string, error) {
	demoPrograms := []demoProgram{
		{
			name:        "Push Pull Legs",
			description: "Classic 3-day split for intermediate lifters",
			days: []demoDay{
				{name: "Push", exercises: []string{"Bench Press", "Overhead Press", "Tricep Pushdown"}},
				{name: "Pull", exercises: []string{"Deadlift", "Barbell Row", "Bicep Curl"}},
				{name: "Legs", exercises: []string{"Squat", "Leg Press", "Calf Raise"}},
			},
		},
		{
			name:        "Full Body Basics",
			description: "Two full-body sessions per week for beginners",
			days: []demoDay{
				{name: "Workout A", exercises: []string{"Squat", "Bench Press", "Barbell Row"}},
				{name: "Workout B", exercises: []string{"Deadlift", "Overhead Press", "Pull-up"}},
			},
		},
	}

	var dayIDs [][2]string
	for _, p := range demoPrograms {
		programID := uuid.NewString()
		if err := repo.AddProgram(programID, p.name, p.description); err != nil {
			return nil, fmt.Errorf("create program %s: %w", p.name, err)
		}

		for _, d := range p.days {
			dayID := uuid.NewString()
			if err := repo.AddDay(dayID, programID, d.name); err != nil {
				return nil, fmt.Errorf("create day %s: %w", d.name, err)
			}
			dayIDs = append(dayIDs, [2]string{programID, dayID})

			for _, e := range d.exercises {
				if err := repo.AddExercise(uuid.NewString(), dayID, e); err != nil {
					return nil, fmt.Errorf("create exercise %s: %w", e, err)
				}
			}
		}
		log.Printf("Created program: %s (%d days)", p.name, len(p.days))
	}
	return dayIDs, nil
}

// seedCalendar assigns the created days over the past week, marking
// the older ones done.
func seedCalendar(repo *calendar.Repository, dayIDs [][2]string) error {
	if len(dayIDs) == 0 {
		return nil
	}

	now := time.Now()
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, -i).Format(entities.DateLayout)
		pair := dayIDs[i%len(dayIDs)]
		if err := repo.AssignDayToDate(date, pair[0], pair[1]); err != nil {
			return fmt.Errorf("assign day to %s: %w", date, err)
		}
		if i >= 2 {
			if err := repo.MarkDone(date); err != nil {
				return fmt.Errorf("mark %s done: %w", date, err)
			}
		}
	}
	if err := repo.UpdateNotes(now.AddDate(0, 0, -3).Format(entities.DateLayout), "Felt strong, added 2.5kg to squats"); err != nil {
		return fmt.Errorf("add calendar notes: %w", err)
	}
	log.Printf("Assigned 7 calendar entries")
	return nil
}

func seedLogs(repo *workoutlogs.Repository) error {
	now := time.Now()
	samples := []struct {
		name    string
		daysAgo int
		sets    int
		reps    int
		weight  float64
	}{
		{"Squat", 2, 5, 5, 100},
		{"Bench Press", 2, 5, 5, 80},
		{"Deadlift", 4, 3, 5, 140},
		{"Barbell Row", 4, 3, 8, 70},
		{"Overhead Press", 6, 4, 6, 50},
	}

	for _, s := range samples {
		entry := &entities.WorkoutLog{
			ID:           uuid.NewString(),
			ExerciseName: s.name,
			Date:         now.AddDate(0, 0, -s.daysAgo).Format(entities.DateLayout),
			Sets:         s.sets,
			Reps:         s.reps,
			Weight:       s.weight,
		}
		if err := repo.Add(entry); err != nil {
			return fmt.Errorf("log %s: %w", s.name, err)
		}
	}
	log.Printf("Recorded %d workout logs", len(samples))
	return nil
}

func seedGyms(repo *gyms.Repository) error {
	gym := &entities.FavoriteGym{
		ID:         "osm-240109189",
		Name:       "Kamppi Training Club",
		Latitude:   60.1699,
		Longitude:  24.9384,
		Address:    "Urho Kekkosen katu 1, Helsinki",
		Distance:   1.2,
		Facilities: []string{"Gym"},
	}
	if err := repo.SaveFavorite(gym); err != nil {
		return fmt.Errorf("save favorite gym: %w", err)
	}
	log.Printf("Saved favorite gym: %s", gym.Name)
	return nil
}
