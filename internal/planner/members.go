package planner

import (
	"smart_events_app/internal/app"
	"smart_events_app/internal/store"
)

// CreateMemberRequest is the validated creation payload for both the direct
// API and the import pipeline. Type is "person" (firstName/lastName) or
// "entity" (name + offline flag).
type CreateMemberRequest struct {
	Type          string `json:"type"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	SpecializedIn string `json:"specializedIn"`
	Experience    string `json:"experience"`
	Address       string `json:"address"`
	Offline       bool   `json:"offline"`
}

func (r *CreateMemberRequest) Validate() error {
	if r.Email == "" {
		return ValidationError("Email is required")
	}
	return nil
}

// MemberResponse is the persisted member shape returned by the API and
// accumulated in import reports.
type MemberResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	SpecializedIn string `json:"specializedIn"`
	Experience    string `json:"experience"`
	Address       string `json:"address"`
	Offline       bool   `json:"offline"`
}

type MemberService struct {
	store store.Store
}

func NewMemberService(st store.Store) *MemberService {
	return &MemberService{store: st}
}

// Create persists a new member after the duplicate-email check. A collision
// returns a DuplicateError and performs no store write.
func (s *MemberService) Create(req *CreateMemberRequest) (*MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByKey(app.CollectionMembers, "email", req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Kind: "Member", Field: "email", Value: req.Email}
	}

	saved, err := s.store.Create(app.CollectionMembers, memberRecord(req))
	if err != nil {
		return nil, err
	}
	return memberResponse(saved), nil
}

func (s *MemberService) GetByID(id string) (*MemberResponse, error) {
	rec, err := s.store.FindByKey(app.CollectionMembers, "id", id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return memberResponse(rec), nil
}

// List returns all members, newest first.
func (s *MemberService) List() ([]*MemberResponse, error) {
	recs, err := s.store.FindAll(app.CollectionMembers, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*MemberResponse, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, memberResponse(recs[i]))
	}
	return out, nil
}

func (s *MemberService) Update(id string, req *CreateMemberRequest) (*MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec, err := s.store.FindByKey(app.CollectionMembers, "id", id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	// Re-check uniqueness only when the email actually changes.
	if rec.GetString("email") != req.Email {
		other, err := s.store.FindByKey(app.CollectionMembers, "email", req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, &DuplicateError{Kind: "Member", Field: "email", Value: req.Email}
		}
	}

	updated := memberRecord(req)
	updated["id"] = rec.ID()
	saved, err := s.store.Save(app.CollectionMembers, updated)
	if err != nil {
		return nil, err
	}
	return memberResponse(saved), nil
}

func (s *MemberService) Delete(id string) error {
	rec, err := s.store.FindByKey(app.CollectionMembers, "id", id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	return s.store.Delete(app.CollectionMembers, rec.ID())
}

// memberRecord maps the request onto a store record, keeping the
// person/entity field groups mutually exclusive.
func memberRecord(req *CreateMemberRequest) store.Record {
	rec := store.Record{
		"type":          req.Type,
		"email":         req.Email,
		"phone":         req.Phone,
		"whatsapp":      req.Whatsapp,
		"specializedIn": req.SpecializedIn,
		"experience":    req.Experience,
		"address":       req.Address,
		"offline":       false,
	}
	if req.Type == "person" {
		rec["firstName"] = req.FirstName
		rec["lastName"] = req.LastName
		rec["name"] = ""
	} else {
		rec["name"] = req.Name
		rec["offline"] = req.Offline
		rec["firstName"] = ""
		rec["lastName"] = ""
	}
	return rec
}

func memberResponse(rec store.Record) *MemberResponse {
	offline, _ := rec["offline"].(bool)
	return &MemberResponse{
		ID:            rec.ID(),
		Type:          rec.GetString("type"),
		FirstName:     rec.GetString("firstName"),
		LastName:      rec.GetString("lastName"),
		Name:          rec.GetString("name"),
		Email:         rec.GetString("email"),
		Phone:         rec.GetString("phone"),
		Whatsapp:      rec.GetString("whatsapp"),
		SpecializedIn: rec.GetString("specializedIn"),
		Experience:    rec.GetString("experience"),
		Address:       rec.GetString("address"),
		Offline:       offline,
	}
}
