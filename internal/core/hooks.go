package core

import (
	"log"

	"github.com/pocketbase/pocketbase"
	pbCore "github.com/pocketbase/pocketbase/core"

	"smart_events_app/internal/app"
	"smart_events_app/internal/tracking"
)

// RegisterProgressHooks keeps event aggregates fresh when task status
// records are written outside the service layer (admin UI, record API).
// Recomputation is idempotent, so overlapping with the service's own
// recompute is harmless.
func RegisterProgressHooks(pbApp *pocketbase.PocketBase, tracker *tracking.Service) {
	recompute := func(e *pbCore.RecordEvent) error {
		eventID := e.Record.GetString("eventId")
		if eventID != "" {
			if _, err := tracker.RecomputeProgress(eventID); err != nil {
				log.Printf("[ERROR] Progress recompute for event %s failed: %v", eventID, err)
			}
		}
		return e.Next()
	}

	pbApp.OnRecordAfterCreateSuccess(app.CollectionTaskStatus).BindFunc(recompute)
	pbApp.OnRecordAfterUpdateSuccess(app.CollectionTaskStatus).BindFunc(recompute)
	pbApp.OnRecordAfterDeleteSuccess(app.CollectionTaskStatus).BindFunc(recompute)
}
