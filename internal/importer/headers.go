package importer

import "strings"

// headerRule pairs a predicate with the canonical field name it selects.
// Rules are evaluated top to bottom and the first match wins, so order is
// part of the business rule (e.g. whatsapp before phone would change which
// one "whatsapp phone" maps to).
type headerRule struct {
	match func(h string) bool
	name  string
}

func contains(subs ...string) func(string) bool {
	return func(h string) bool {
		for _, sub := range subs {
			if !strings.Contains(h, sub) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(h string) bool {
		for _, sub := range subs {
			if strings.Contains(h, sub) {
				return true
			}
		}
		return false
	}
}

var memberHeaderRules = []headerRule{
	{containsAny("type", "membertype"), "type"},
	{contains("first", "name"), "firstName"},
	{contains("last", "name"), "lastName"},
	{func(h string) bool { return h == "name" || strings.Contains(h, "entityname") }, "name"},
	{containsAny("email"), "email"},
	{func(h string) bool { return strings.Contains(h, "phone") && !strings.Contains(h, "whatsapp") }, "phone"},
	{containsAny("whatsapp", "whats app"), "whatsapp"},
	{containsAny("specialized", "specialization"), "specializedIn"},
	{containsAny("experience"), "experience"},
	{containsAny("address"), "address"},
	{containsAny("offline", "isoffline"), "offline"},
}

var eventHeaderRules = []headerRule{
	{contains("event", "name"), "eventName"},
	{contains("event", "info"), "eventInfo"},
	{contains("start", "date"), "startDate"},
	{contains("end", "date"), "endDate"},
	{func(h string) bool {
		return strings.Contains(h, "event") && strings.Contains(h, "date") &&
			!strings.Contains(h, "start") && !strings.Contains(h, "end")
	}, "eventDate"},
	{containsAny("status"), "status"},
	{containsAny("task"), "tasks"},
	{containsAny("assigned", "member"), "assignedMembers"},
	{containsAny("step"), "currentStep"},
	{containsAny("completed"), "completedSteps"},
}

// normalizeHeader maps an arbitrary header spelling to a canonical field
// name, or "" when the header is unrecognized (the column is dropped).
func normalizeHeader(header string, rules []headerRule) string {
	lower := strings.ToLower(strings.TrimSpace(header))
	for _, rule := range rules {
		if rule.match(lower) {
			return rule.name
		}
	}
	return ""
}
