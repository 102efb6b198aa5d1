package importer

import (
	"errors"
	"strings"

	"smart_events_app/internal/app"
	"smart_events_app/internal/planner"
	"smart_events_app/internal/utils"
)

// stringValue returns the first non-empty value among the given keys. The
// alias lists matter for JSON imports, whose keys bypass header
// normalization and arrive in whatever spelling the file used.
func stringValue(row app.RawRow, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if s := utils.ToString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func hasAny(row app.RawRow, keys ...string) bool {
	for _, key := range keys {
		if _, ok := row[key]; ok {
			return true
		}
	}
	return false
}

// memberRequestFromRow materializes a member creation request. Member type
// is inferred when absent: a first-name-like key means person, a name-like
// key means entity, anything else fails the row.
func memberRequestFromRow(row app.RawRow) (*planner.CreateMemberRequest, error) {
	req := &planner.CreateMemberRequest{}

	memberType := stringValue(row, "type", "memberType", "Type")
	if memberType == "" {
		switch {
		case hasAny(row, "firstName", "first_name", "First Name"):
			memberType = "person"
		case hasAny(row, "name", "Name", "entityName"):
			memberType = "entity"
		default:
			return nil, errors.New("Cannot determine member type. Provide 'type' field or firstName/name")
		}
	}
	req.Type = strings.ToLower(memberType)

	if req.Type == "person" {
		req.FirstName = stringValue(row, "firstName", "first_name", "First Name", "First")
		req.LastName = stringValue(row, "lastName", "last_name", "Last Name", "Last")
	} else {
		req.Name = stringValue(row, "name", "Name", "entityName", "Entity Name")
		req.Offline = utils.Truthy(stringValue(row, "offline", "Offline", "isOffline", "Is Offline"))
	}

	req.Email = stringValue(row, "email", "Email", "emailAddress")
	if req.Email == "" {
		return nil, errors.New("Email is required")
	}

	req.Phone = stringValue(row, "phone", "Phone", "phoneNumber", "Phone Number")
	req.Whatsapp = stringValue(row, "whatsapp", "WhatsApp", "Whats App", "whatsApp")
	req.SpecializedIn = stringValue(row, "specializedIn", "specialized_in", "Specialized In", "specialization", "Specialization")
	req.Experience = stringValue(row, "experience", "Experience", "experienceYears", "Experience Years")
	req.Address = stringValue(row, "address", "Address")

	return req, nil
}

// eventRequestFromRow materializes an event creation request. List fields
// accept either a parsed list or a JSON-encoded string; a string that fails
// to decode degrades to an empty list instead of failing the row.
func eventRequestFromRow(row app.RawRow) (*planner.CreateEventRequest, error) {
	req := &planner.CreateEventRequest{
		EventName: stringValue(row, "eventName", "event_name", "Event Name", "name"),
		EventInfo: stringValue(row, "eventInfo", "event_info", "Event Info", "info", "description"),
		StartDate: stringValue(row, "startDate", "start_date", "Start Date"),
		EndDate:   stringValue(row, "endDate", "end_date", "End Date"),
		EventDate: stringValue(row, "eventDate", "event_date", "Event Date"),
		Status:    stringValue(row, "status", "Status"),
	}

	req.Tasks = utils.DecodeList(row["tasks"])
	req.AssignedMembers = utils.DecodeList(row["assignedMembers"])
	req.CurrentStep = utils.ToInt(row["currentStep"], 1)
	req.CompletedSteps = utils.DecodeIntList(row["completedSteps"])

	if strings.TrimSpace(req.EventName) == "" {
		return nil, errors.New("Event name is required")
	}
	return req, nil
}
