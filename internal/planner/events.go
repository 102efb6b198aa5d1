package planner

import (
	"encoding/json"
	"strings"

	"smart_events_app/internal/app"
	"smart_events_app/internal/store"
	"smart_events_app/internal/utils"
)

// CreateEventRequest carries the wizard payload. Tasks, assigned members and
// completed steps are stored as JSON strings and decoded leniently on read.
type CreateEventRequest struct {
	EventName       string        `json:"eventName"`
	EventInfo       string        `json:"eventInfo"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	EventDate       string        `json:"eventDate"`
	Status          string        `json:"status"`
	Tasks           []interface{} `json:"tasks"`
	AssignedMembers []interface{} `json:"assignedMembers"`
	CurrentStep     int           `json:"currentStep"`
	CompletedSteps  []int         `json:"completedSteps"`
}

func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.EventName) == "" {
		return ValidationError("Event name is required")
	}
	return nil
}

type EventResponse struct {
	ID              string        `json:"id"`
	EventName       string        `json:"eventName"`
	EventInfo       string        `json:"eventInfo"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	EventDate       string        `json:"eventDate"`
	Status          string        `json:"status"`
	Tasks           []interface{} `json:"tasks"`
	AssignedMembers []interface{} `json:"assignedMembers"`
	CurrentStep     int           `json:"currentStep"`
	CompletedSteps  []int         `json:"completedSteps"`
}

type EventService struct {
	store store.Store
}

func NewEventService(st store.Store) *EventService {
	return &EventService{store: st}
}

// Create persists a new event after the duplicate-name check. Used by the
// import pipeline; the wizard endpoint goes through SaveWizard instead.
func (s *EventService) Create(req *CreateEventRequest) (*EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByKey(app.CollectionEvents, "eventName", req.EventName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Kind: "Event", Field: "name", Value: req.EventName}
	}

	saved, err := s.store.Create(app.CollectionEvents, eventRecord(req))
	if err != nil {
		return nil, err
	}
	return eventResponse(saved), nil
}

// SaveWizard upserts by event name: an existing event is overwritten with the
// new wizard state, otherwise one is created.
func (s *EventService) SaveWizard(req *CreateEventRequest) (*EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec := eventRecord(req)
	existing, err := s.store.FindByKey(app.CollectionEvents, "eventName", req.EventName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		rec["id"] = existing.ID()
	}
	saved, err := s.store.Save(app.CollectionEvents, rec)
	if err != nil {
		return nil, err
	}
	return eventResponse(saved), nil
}

func (s *EventService) GetWizard(eventName string) (*EventResponse, error) {
	rec, err := s.store.FindByKey(app.CollectionEvents, "eventName", eventName)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return eventResponse(rec), nil
}

// ListWizards returns all events, newest first.
func (s *EventService) ListWizards() ([]*EventResponse, error) {
	recs, err := s.store.FindAll(app.CollectionEvents, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*EventResponse, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, eventResponse(recs[i]))
	}
	return out, nil
}

func (s *EventService) DeleteWizard(eventName string) error {
	rec, err := s.store.FindByKey(app.CollectionEvents, "eventName", eventName)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	return s.store.Delete(app.CollectionEvents, rec.ID())
}

func eventRecord(req *CreateEventRequest) store.Record {
	step := req.CurrentStep
	if step == 0 {
		step = 1
	}
	return store.Record{
		"eventName":       req.EventName,
		"eventInfo":       req.EventInfo,
		"startDate":       req.StartDate,
		"endDate":         req.EndDate,
		"eventDate":       req.EventDate,
		"status":          req.Status,
		"tasks":           encodeJSON(req.Tasks),
		"assignedMembers": encodeJSON(req.AssignedMembers),
		"currentStep":     step,
		"completedSteps":  encodeJSON(req.CompletedSteps),
	}
}

func eventResponse(rec store.Record) *EventResponse {
	return &EventResponse{
		ID:              rec.ID(),
		EventName:       rec.GetString("eventName"),
		EventInfo:       rec.GetString("eventInfo"),
		StartDate:       rec.GetString("startDate"),
		EndDate:         rec.GetString("endDate"),
		EventDate:       rec.GetString("eventDate"),
		Status:          rec.GetString("status"),
		Tasks:           utils.DecodeList(rec["tasks"]),
		AssignedMembers: utils.DecodeList(rec["assignedMembers"]),
		CurrentStep:     utils.ToInt(rec["currentStep"], 1),
		CompletedSteps:  utils.DecodeIntList(rec["completedSteps"]),
	}
}

func encodeJSON(v interface{}) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}
