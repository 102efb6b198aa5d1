package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"smart_events_app/internal/ai"
	"smart_events_app/internal/importer"
	"smart_events_app/internal/labels"
	"smart_events_app/internal/planner"
	"smart_events_app/internal/tracking"
)

// maxImportSize caps uploaded import files at 10MB.
const maxImportSize = 10 << 20

func HandleImport(imports *importer.Service, kind importer.Kind, e *core.RequestEvent) error {
	file, header, err := e.Request.FormFile("file")
	if err != nil {
		log.Printf("[WARN] HandleImport: missing file part: %v", err)
		return e.BadRequestError("A 'file' form field is required", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		log.Printf("[ERROR] HandleImport: reading upload failed: %v", err)
		return e.InternalServerError("Failed to read uploaded file", err)
	}
	if len(data) > maxImportSize {
		return e.BadRequestError("File too large (max 10MB)", nil)
	}

	report, err := imports.ImportRecords(data, header.Filename, kind)
	if err != nil {
		log.Printf("[WARN] HandleImport: %s import of %q rejected: %v", kind, header.Filename, err)
		return e.BadRequestError(err.Error(), nil)
	}
	log.Printf("[INFO] Imported %s file %q: %d ok, %d failed", kind, header.Filename, report.Successful, report.Failed)
	return e.JSON(http.StatusOK, report)
}

func HandleCreateMember(members *planner.MemberService, e *core.RequestEvent) error {
	req := &planner.CreateMemberRequest{}
	if err := e.BindBody(req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	resp, err := members.Create(req)
	if err != nil {
		return memberError(e, "HandleCreateMember", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleListMembers(members *planner.MemberService, e *core.RequestEvent) error {
	resp, err := members.List()
	if err != nil {
		log.Printf("[ERROR] HandleListMembers: %v", err)
		return e.InternalServerError("Failed to list members", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleGetMember(members *planner.MemberService, e *core.RequestEvent) error {
	resp, err := members.GetByID(e.Request.PathValue("id"))
	if err != nil {
		return memberError(e, "HandleGetMember", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleUpdateMember(members *planner.MemberService, e *core.RequestEvent) error {
	req := &planner.CreateMemberRequest{}
	if err := e.BindBody(req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	resp, err := members.Update(e.Request.PathValue("id"), req)
	if err != nil {
		return memberError(e, "HandleUpdateMember", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleDeleteMember(members *planner.MemberService, e *core.RequestEvent) error {
	if err := members.Delete(e.Request.PathValue("id")); err != nil {
		return memberError(e, "HandleDeleteMember", err)
	}
	return e.JSON(http.StatusOK, map[string]string{"message": "Member deleted"})
}

func HandleCreateEvent(events *planner.EventService, e *core.RequestEvent) error {
	req := &planner.CreateEventRequest{}
	if err := e.BindBody(req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	resp, err := events.Create(req)
	if err != nil {
		return plannerError(e, "HandleCreateEvent", err)
	}
	return e.JSON(http.StatusOK, resp)
}

// HandleSaveWizard upserts an event draft keyed by its name, so the planning
// wizard can be left and resumed.
func HandleSaveWizard(events *planner.EventService, e *core.RequestEvent) error {
	req := &planner.CreateEventRequest{}
	if err := e.BindBody(req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	resp, err := events.SaveWizard(req)
	if err != nil {
		return plannerError(e, "HandleSaveWizard", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleListEvents(events *planner.EventService, e *core.RequestEvent) error {
	resp, err := events.ListWizards()
	if err != nil {
		log.Printf("[ERROR] HandleListEvents: %v", err)
		return e.InternalServerError("Failed to list events", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleGetEvent(events *planner.EventService, e *core.RequestEvent) error {
	resp, err := events.GetWizard(e.Request.PathValue("eventName"))
	if err != nil {
		return plannerError(e, "HandleGetEvent", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleDeleteEvent(events *planner.EventService, e *core.RequestEvent) error {
	if err := events.DeleteWizard(e.Request.PathValue("eventName")); err != nil {
		return plannerError(e, "HandleDeleteEvent", err)
	}
	return e.JSON(http.StatusOK, map[string]string{"message": "Event deleted"})
}

type taskStatusRequest struct {
	TaskID  string `json:"taskId"`
	EventID string `json:"eventId"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

func HandleUpdateTaskStatus(tracker *tracking.Service, e *core.RequestEvent) error {
	req := &taskStatusRequest{}
	if err := e.BindBody(req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if req.TaskID == "" || req.EventID == "" {
		return e.BadRequestError("taskId and eventId are required", nil)
	}
	resp, err := tracker.UpdateTaskStatus(req.TaskID, req.EventID, req.Status, req.Notes)
	if err != nil {
		log.Printf("[ERROR] HandleUpdateTaskStatus: %v", err)
		return e.InternalServerError("Failed to update task status", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleGetTaskStatus(tracker *tracking.Service, e *core.RequestEvent) error {
	resp, err := tracker.GetTaskStatus(e.Request.PathValue("taskId"))
	if err != nil {
		return trackingError(e, "HandleGetTaskStatus", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleCompleteTask(tracker *tracking.Service, e *core.RequestEvent) error {
	resp, err := tracker.CompleteTask(e.Request.PathValue("taskId"))
	if err != nil {
		return trackingError(e, "HandleCompleteTask", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleListTasks(tracker *tracking.Service, e *core.RequestEvent) error {
	resp, err := tracker.ListTasks()
	if err != nil {
		log.Printf("[ERROR] HandleListTasks: %v", err)
		return e.InternalServerError("Failed to list tasks", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleGetEventStatus(tracker *tracking.Service, e *core.RequestEvent) error {
	resp, err := tracker.GetEventStatus(e.Request.PathValue("eventId"))
	if err != nil {
		log.Printf("[ERROR] HandleGetEventStatus: %v", err)
		return e.InternalServerError("Failed to load event status", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func HandleGenerateTasks(client *ai.Client, e *core.RequestEvent) error {
	return handleGenerate(e, "HandleGenerateTasks", client.GenerateTasks)
}

func HandleGenerateSchedule(client *ai.Client, e *core.RequestEvent) error {
	return handleGenerate(e, "HandleGenerateSchedule", client.GenerateSchedule)
}

func HandleGenerateTaskName(client *ai.Client, e *core.RequestEvent) error {
	return handleGenerate(e, "HandleGenerateTaskName", client.GenerateTaskName)
}

func HandleLabels(catalog *labels.Catalog, e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, catalog.All())
}

// HandleLabel returns a single label as a {key: value} pair; unknown keys
// echo the key itself.
func HandleLabel(catalog *labels.Catalog, e *core.RequestEvent) error {
	key := e.Request.PathValue("key")
	return e.JSON(http.StatusOK, map[string]string{key: catalog.Get(key)})
}

func HandleLabelsByPrefix(catalog *labels.Catalog, e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, catalog.WithPrefix(e.Request.PathValue("prefix")))
}

func handleGenerate(e *core.RequestEvent, op string, call func(ctx context.Context, body map[string]interface{}) (map[string]interface{}, error)) error {
	body := map[string]interface{}{}
	if err := e.BindBody(&body); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	resp, err := call(e.Request.Context(), body)
	if err != nil {
		log.Printf("[ERROR] %s: %v", op, err)
		return e.InternalServerError("Generation service unavailable", err)
	}
	return e.JSON(http.StatusOK, resp)
}

func memberError(e *core.RequestEvent, op string, err error) error {
	var dup *planner.DuplicateError
	switch {
	case errors.As(err, &dup):
		return e.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, planner.ErrNotFound):
		return e.NotFoundError("Member not found", nil)
	}
	return plannerError(e, op, err)
}

func plannerError(e *core.RequestEvent, op string, err error) error {
	var dup *planner.DuplicateError
	var validation planner.ValidationError
	switch {
	case errors.As(err, &dup):
		return e.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, planner.ErrNotFound):
		return e.NotFoundError("Event not found", nil)
	case errors.As(err, &validation):
		return e.BadRequestError(err.Error(), nil)
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return e.InternalServerError("Request failed", err)
}

func trackingError(e *core.RequestEvent, op string, err error) error {
	if errors.Is(err, tracking.ErrNotFound) {
		return e.NotFoundError("Task status not found", nil)
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return e.InternalServerError("Request failed", err)
}
