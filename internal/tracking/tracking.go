package tracking

import (
	"errors"

	"smart_events_app/internal/app"
	"smart_events_app/internal/store"
	"smart_events_app/internal/utils"
)

// ErrNotFound marks lookups of task statuses that were never recorded.
var ErrNotFound = errors.New("task status not found")

// TaskStatus is one per-task status row, keyed by taskId with upsert
// semantics.
type TaskStatus struct {
	ID      string `json:"id"`
	TaskID  string `json:"taskId"`
	EventID string `json:"eventId"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// EventProgress is the single per-event rollup, always recomputed wholesale
// from the task status rows.
type EventProgress struct {
	EventID            string  `json:"eventId"`
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	InProgressTasks    int     `json:"inProgressTasks"`
	PendingTasks       int     `json:"pendingTasks"`
	BlockedTasks       int     `json:"blockedTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// EventStatusResponse is the aggregate plus the derived coarse label.
type EventStatusResponse struct {
	EventProgress
	Status string `json:"status"`
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// UpdateTaskStatus upserts the status row for taskId (eventId is kept as-is
// on updates) and recomputes the event aggregate before returning. The
// status string is not validated: unknown values are tolerated and simply
// never match a count bucket.
func (s *Service) UpdateTaskStatus(taskID, eventID, status, notes string) (*TaskStatus, error) {
	rec, err := s.store.FindByKey(app.CollectionTaskStatus, "taskId", taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = store.Record{"taskId": taskID, "eventId": eventID}
	} else {
		eventID = rec.GetString("eventId")
	}
	rec["status"] = status
	rec["notes"] = notes

	saved, err := s.store.Save(app.CollectionTaskStatus, rec)
	if err != nil {
		return nil, err
	}
	if _, err := s.RecomputeProgress(eventID); err != nil {
		return nil, err
	}
	return taskStatusFromRecord(saved), nil
}

func (s *Service) GetTaskStatus(taskID string) (*TaskStatus, error) {
	rec, err := s.store.FindByKey(app.CollectionTaskStatus, "taskId", taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return taskStatusFromRecord(rec), nil
}

// CompleteTask marks an existing status row completed and recomputes the
// aggregate. Unlike UpdateTaskStatus it refuses to create the row.
func (s *Service) CompleteTask(taskID string) (*TaskStatus, error) {
	rec, err := s.store.FindByKey(app.CollectionTaskStatus, "taskId", taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	rec["status"] = app.StatusCompleted

	saved, err := s.store.Save(app.CollectionTaskStatus, rec)
	if err != nil {
		return nil, err
	}
	if _, err := s.RecomputeProgress(rec.GetString("eventId")); err != nil {
		return nil, err
	}
	return taskStatusFromRecord(saved), nil
}

// ListTasks returns every task status row.
func (s *Service) ListTasks() ([]*TaskStatus, error) {
	recs, err := s.store.FindAll(app.CollectionTaskStatus, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*TaskStatus, 0, len(recs))
	for _, rec := range recs {
		out = append(out, taskStatusFromRecord(rec))
	}
	return out, nil
}

// RecomputeProgress rebuilds the aggregate for eventId from all of its task
// status rows and upserts the single progress record. Counting is by exact
// match against the four canonical statuses; rows with any other status
// still count toward the total. Always a full recomputation, never an
// incremental delta, so the aggregate cannot drift from the source rows.
//
// There is no lock around the read-modify-write: concurrent updates to two
// tasks of the same event can race and the later write wins. Each write is
// itself computed from a fresh read of all rows, so the next update heals
// any undercount.
func (s *Service) RecomputeProgress(eventID string) (*EventProgress, error) {
	rows, err := s.store.FindAll(app.CollectionTaskStatus, map[string]interface{}{"eventId": eventID})
	if err != nil {
		return nil, err
	}

	progress := &EventProgress{EventID: eventID, TotalTasks: len(rows)}
	for _, row := range rows {
		switch row.GetString("status") {
		case app.StatusCompleted:
			progress.CompletedTasks++
		case app.StatusInProgress:
			progress.InProgressTasks++
		case app.StatusPending:
			progress.PendingTasks++
		case app.StatusBlocked:
			progress.BlockedTasks++
		}
	}
	if progress.TotalTasks > 0 {
		progress.ProgressPercentage = float64(progress.CompletedTasks) * 100.0 / float64(progress.TotalTasks)
	}

	rec, err := s.store.FindByKey(app.CollectionEventProgress, "eventId", eventID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = store.Record{"eventId": eventID}
	}
	rec["totalTasks"] = progress.TotalTasks
	rec["completedTasks"] = progress.CompletedTasks
	rec["inProgressTasks"] = progress.InProgressTasks
	rec["pendingTasks"] = progress.PendingTasks
	rec["blockedTasks"] = progress.BlockedTasks
	rec["progressPercentage"] = progress.ProgressPercentage

	if _, err := s.store.Save(app.CollectionEventProgress, rec); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetEventStatus reads the aggregate, lazily persisting a zeroed one for an
// unknown event, and derives the coarse event label.
func (s *Service) GetEventStatus(eventID string) (*EventStatusResponse, error) {
	rec, err := s.store.FindByKey(app.CollectionEventProgress, "eventId", eventID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = store.Record{
			"eventId":            eventID,
			"totalTasks":         0,
			"completedTasks":     0,
			"inProgressTasks":    0,
			"pendingTasks":       0,
			"blockedTasks":       0,
			"progressPercentage": 0.0,
		}
		if rec, err = s.store.Save(app.CollectionEventProgress, rec); err != nil {
			return nil, err
		}
	}

	progress := progressFromRecord(rec)
	return &EventStatusResponse{
		EventProgress: *progress,
		Status:        deriveStatus(progress),
	}, nil
}

// deriveStatus maps the aggregate to the coarse event label: completed at
// 100%, active once anything moved, planning otherwise.
func deriveStatus(p *EventProgress) string {
	switch {
	case p.ProgressPercentage == 100.0:
		return app.EventCompleted
	case p.InProgressTasks > 0 || p.CompletedTasks > 0:
		return app.EventActive
	default:
		return app.EventPlanning
	}
}

func taskStatusFromRecord(rec store.Record) *TaskStatus {
	return &TaskStatus{
		ID:      rec.ID(),
		TaskID:  rec.GetString("taskId"),
		EventID: rec.GetString("eventId"),
		Status:  rec.GetString("status"),
		Notes:   rec.GetString("notes"),
	}
}

func progressFromRecord(rec store.Record) *EventProgress {
	pct := 0.0
	switch v := rec["progressPercentage"].(type) {
	case float64:
		pct = v
	case int:
		pct = float64(v)
	}
	return &EventProgress{
		EventID:            rec.GetString("eventId"),
		TotalTasks:         utils.ToInt(rec["totalTasks"], 0),
		CompletedTasks:     utils.ToInt(rec["completedTasks"], 0),
		InProgressTasks:    utils.ToInt(rec["inProgressTasks"], 0),
		PendingTasks:       utils.ToInt(rec["pendingTasks"], 0),
		BlockedTasks:       utils.ToInt(rec["blockedTasks"], 0),
		ProgressPercentage: pct,
	}
}
