package core

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"smart_events_app/internal/app"
)

// EnsureCollections creates or updates the four application collections.
// Safe to run on every startup: existing collections only get their rules
// reasserted.
func EnsureCollections(pbApp core.App) error {
	if err := ensureMembers(pbApp); err != nil {
		return err
	}
	if err := ensureEvents(pbApp); err != nil {
		return err
	}
	if err := ensureTaskStatus(pbApp); err != nil {
		return err
	}
	return ensureEventProgress(pbApp)
}

func ensureMembers(pbApp core.App) error {
	col, err := pbApp.FindCollectionByNameOrId(app.CollectionMembers)
	if err != nil {
		col = core.NewBaseCollection(app.CollectionMembers)
		col.Fields.Add(&core.TextField{Name: "type", Required: true})
		col.Fields.Add(&core.TextField{Name: "firstName"})
		col.Fields.Add(&core.TextField{Name: "lastName"})
		col.Fields.Add(&core.TextField{Name: "name"})
		col.Fields.Add(&core.TextField{Name: "email", Required: true})
		col.Fields.Add(&core.TextField{Name: "phone"})
		col.Fields.Add(&core.TextField{Name: "whatsapp"})
		col.Fields.Add(&core.TextField{Name: "specializedIn"})
		col.Fields.Add(&core.TextField{Name: "experience"})
		col.Fields.Add(&core.TextField{Name: "address"})
		col.Fields.Add(&core.BoolField{Name: "offline"})
		col.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		col.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		if err := pbApp.Save(col); err != nil {
			return err
		}
		col.AddIndex("idx_members_email", true, "email", "")
	}
	applyPublicRules(col)
	return pbApp.Save(col)
}

func ensureEvents(pbApp core.App) error {
	col, err := pbApp.FindCollectionByNameOrId(app.CollectionEvents)
	if err != nil {
		col = core.NewBaseCollection(app.CollectionEvents)
		col.Fields.Add(&core.TextField{Name: "eventName", Required: true})
		col.Fields.Add(&core.TextField{Name: "eventInfo"})
		col.Fields.Add(&core.TextField{Name: "startDate"})
		col.Fields.Add(&core.TextField{Name: "endDate"})
		col.Fields.Add(&core.TextField{Name: "eventDate"})
		col.Fields.Add(&core.TextField{Name: "status"})
		// List fields are stored as JSON strings so imports and the wizard
		// can round-trip them without a schema migration.
		col.Fields.Add(&core.TextField{Name: "tasks", Max: 100000})
		col.Fields.Add(&core.TextField{Name: "assignedMembers", Max: 100000})
		col.Fields.Add(&core.NumberField{Name: "currentStep"})
		col.Fields.Add(&core.TextField{Name: "completedSteps", Max: 100000})
		col.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		col.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		if err := pbApp.Save(col); err != nil {
			return err
		}
		col.AddIndex("idx_events_event_name", true, "eventName", "")
	}
	applyPublicRules(col)
	return pbApp.Save(col)
}

func ensureTaskStatus(pbApp core.App) error {
	col, err := pbApp.FindCollectionByNameOrId(app.CollectionTaskStatus)
	if err != nil {
		col = core.NewBaseCollection(app.CollectionTaskStatus)
		col.Fields.Add(&core.TextField{Name: "taskId", Required: true})
		col.Fields.Add(&core.TextField{Name: "eventId", Required: true})
		col.Fields.Add(&core.TextField{Name: "status", Required: true})
		col.Fields.Add(&core.TextField{Name: "notes"})
		col.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		col.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		if err := pbApp.Save(col); err != nil {
			return err
		}
		col.AddIndex("idx_task_status_task_id", true, "taskId", "")
		col.AddIndex("idx_task_status_event_id", false, "eventId", "")
	}
	applyPublicRules(col)
	return pbApp.Save(col)
}

func ensureEventProgress(pbApp core.App) error {
	col, err := pbApp.FindCollectionByNameOrId(app.CollectionEventProgress)
	if err != nil {
		col = core.NewBaseCollection(app.CollectionEventProgress)
		col.Fields.Add(&core.TextField{Name: "eventId", Required: true})
		col.Fields.Add(&core.NumberField{Name: "totalTasks"})
		col.Fields.Add(&core.NumberField{Name: "completedTasks"})
		col.Fields.Add(&core.NumberField{Name: "inProgressTasks"})
		col.Fields.Add(&core.NumberField{Name: "pendingTasks"})
		col.Fields.Add(&core.NumberField{Name: "blockedTasks"})
		col.Fields.Add(&core.NumberField{Name: "progressPercentage"})
		col.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		col.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		if err := pbApp.Save(col); err != nil {
			return err
		}
		col.AddIndex("idx_event_progress_event_id", true, "eventId", "")
	}
	applyPublicRules(col)
	return pbApp.Save(col)
}

func applyPublicRules(col *core.Collection) {
	col.ListRule = types.Pointer(RulePublic)
	col.ViewRule = types.Pointer(RulePublic)
	col.CreateRule = types.Pointer(RulePublic)
	col.UpdateRule = types.Pointer(RulePublic)
	col.DeleteRule = types.Pointer(RulePublic)
}
