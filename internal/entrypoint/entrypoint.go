package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mlahtinen/fitcomp/internal/config"
	"github.com/mlahtinen/fitcomp/internal/database"
	"github.com/mlahtinen/fitcomp/internal/database/calendar"
	"github.com/mlahtinen/fitcomp/internal/database/gyms"
	"github.com/mlahtinen/fitcomp/internal/database/library"
	"github.com/mlahtinen/fitcomp/internal/database/programs"
	"github.com/mlahtinen/fitcomp/internal/database/workoutlogs"
	http_controllers "github.com/mlahtinen/fitcomp/internal/http"
	"github.com/mlahtinen/fitcomp/internal/overpass"
	"github.com/mlahtinen/fitcomp/internal/scheduler"
	"github.com/mlahtinen/fitcomp/internal/services"
	"github.com/mlahtinen/fitcomp/internal/state"
	"github.com/mlahtinen/fitcomp/internal/tasks"
	"github.com/mlahtinen/fitcomp/internal/wger"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM arrives, then
// shuts it down within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before closing the listener.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the full application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting FitComp v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	programRepo := programs.NewRepository(db.DB)
	calendarRepo := calendar.NewRepository(db.DB)
	logRepo := workoutlogs.NewRepository(db.DB)
	gymRepo := gyms.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)

	wgerClient := wger.NewClient(cfg.Wger.BaseURL)
	overpassClient := overpass.NewClient(cfg.Overpass.URL)

	exerciseService := services.NewExerciseService(wgerClient, libraryRepo)

	programState := state.NewProgramState(programRepo, calendarRepo)
	calendarState := state.NewCalendarState(calendarRepo)
	logState := state.NewWorkoutLogState(logRepo, workoutlogs.DefaultLimit)

	// Task queue for background catalog maintenance
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var refreshScheduler *scheduler.LibraryRefreshScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRefreshExerciseQueue(wgerClient, libraryRepo),
			tasks.NewCleanupLibraryQueue(libraryRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.LibraryRefresh.Enabled {
			refreshScheduler = scheduler.NewLibraryRefreshScheduler(libraryRepo, taskClient, scheduler.Config{
				Schedule:      cfg.LibraryRefresh.Schedule,
				MaxAge:        cfg.LibraryRefresh.MaxAge,
				BatchSize:     cfg.LibraryRefresh.BatchSize,
				RetentionDays: cfg.LibraryRefresh.RetentionDays,
			})
			if err := refreshScheduler.Start(context.Background()); err != nil {
				log.Printf("WARNING: Failed to start library refresh scheduler: %v", err)
			}
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Version:        version,
		Database:       db,
		Programs:       programState,
		Calendar:       calendarState,
		WorkoutLogs:    logState,
		ExerciseFinder: exerciseService,
		GymSearcher:    overpassClient,
		Favorites:      gymRepo,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if refreshScheduler != nil {
			refreshScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
