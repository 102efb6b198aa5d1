package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"smart_events_app/internal/ai"
	"smart_events_app/internal/app"
	"smart_events_app/internal/config"
	appCore "smart_events_app/internal/core"
	"smart_events_app/internal/handlers"
	"smart_events_app/internal/importer"
	"smart_events_app/internal/labels"
	"smart_events_app/internal/planner"
	"smart_events_app/internal/store"
	"smart_events_app/internal/tracking"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] Loaded environment from .env")
	}
	cfg := config.Load()

	catalog, err := labels.Load(cfg.LabelsFile)
	if err != nil {
		log.Printf("[WARN] Labels file unavailable, falling back to raw keys: %v", err)
		catalog = labels.Empty()
	}

	pbApp := pocketbase.New()

	st := store.NewPocketBase(pbApp, app.CollectionFields)
	members := planner.NewMemberService(st)
	events := planner.NewEventService(st)
	imports := importer.New(members, events)
	tracker := tracking.NewService(st)
	aiClient := ai.NewClient(cfg.AiServiceURL, time.Duration(cfg.AiServiceTimeoutSeconds)*time.Second)

	appCore.RegisterProgressHooks(pbApp, tracker)

	pbApp.OnServe().BindFunc(func(e *core.ServeEvent) error {
		log.Println("[INFO] Server is starting, registering routes...")

		if err := appCore.EnsureCollections(e.App); err != nil {
			log.Printf("[ERROR] Bootstrap collections failed: %v", err)
		}

		e.Router.GET("/hello", func(e *core.RequestEvent) error {
			return e.String(200, "Hello world!")
		})

		e.Router.POST("/api/import/members", func(e *core.RequestEvent) error {
			return handlers.HandleImport(imports, importer.KindMember, e)
		})
		e.Router.POST("/api/import/events", func(e *core.RequestEvent) error {
			return handlers.HandleImport(imports, importer.KindEvent, e)
		})

		e.Router.POST("/api/members", func(e *core.RequestEvent) error { return handlers.HandleCreateMember(members, e) })
		e.Router.GET("/api/members", func(e *core.RequestEvent) error { return handlers.HandleListMembers(members, e) })
		e.Router.GET("/api/members/{id}", func(e *core.RequestEvent) error { return handlers.HandleGetMember(members, e) })
		e.Router.PUT("/api/members/{id}", func(e *core.RequestEvent) error { return handlers.HandleUpdateMember(members, e) })
		e.Router.DELETE("/api/members/{id}", func(e *core.RequestEvent) error { return handlers.HandleDeleteMember(members, e) })

		e.Router.POST("/api/events", func(e *core.RequestEvent) error { return handlers.HandleCreateEvent(events, e) })
		e.Router.POST("/api/events/wizard", func(e *core.RequestEvent) error { return handlers.HandleSaveWizard(events, e) })
		e.Router.GET("/api/events", func(e *core.RequestEvent) error { return handlers.HandleListEvents(events, e) })
		e.Router.GET("/api/events/{eventName}", func(e *core.RequestEvent) error { return handlers.HandleGetEvent(events, e) })
		e.Router.DELETE("/api/events/{eventName}", func(e *core.RequestEvent) error { return handlers.HandleDeleteEvent(events, e) })

		e.Router.POST("/api/tracking/task-status", func(e *core.RequestEvent) error { return handlers.HandleUpdateTaskStatus(tracker, e) })
		e.Router.GET("/api/tracking/task-status/{taskId}", func(e *core.RequestEvent) error { return handlers.HandleGetTaskStatus(tracker, e) })
		e.Router.POST("/api/tracking/task-status/{taskId}/complete", func(e *core.RequestEvent) error { return handlers.HandleCompleteTask(tracker, e) })
		e.Router.GET("/api/tracking/tasks", func(e *core.RequestEvent) error { return handlers.HandleListTasks(tracker, e) })
		e.Router.GET("/api/tracking/event-status/{eventId}", func(e *core.RequestEvent) error { return handlers.HandleGetEventStatus(tracker, e) })

		e.Router.POST("/api/generate-tasks", func(e *core.RequestEvent) error { return handlers.HandleGenerateTasks(aiClient, e) })
		e.Router.POST("/api/generate-schedule", func(e *core.RequestEvent) error { return handlers.HandleGenerateSchedule(aiClient, e) })
		e.Router.POST("/api/generate-task-name", func(e *core.RequestEvent) error { return handlers.HandleGenerateTaskName(aiClient, e) })

		e.Router.GET("/api/labels", func(e *core.RequestEvent) error { return handlers.HandleLabels(catalog, e) })
		e.Router.GET("/api/labels/prefix/{prefix}", func(e *core.RequestEvent) error { return handlers.HandleLabelsByPrefix(catalog, e) })
		e.Router.GET("/api/labels/{key}", func(e *core.RequestEvent) error { return handlers.HandleLabel(catalog, e) })

		log.Println("[INFO] Server is ready to serve requests")
		return e.Next()
	})

	if err := pbApp.Start(); err != nil {
		log.Fatal(err)
	}
}
