package app

// Collection names and field lists. The field lists drive both the schema
// bootstrap and the generic record mapping in the PocketBase store backend.
const (
	CollectionMembers       = "members"
	CollectionEvents        = "events"
	CollectionTaskStatus    = "task_status"
	CollectionEventProgress = "event_progress"
)

// Canonical task status values. Anything else is tolerated on write and
// simply never matches a count bucket.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusBlocked    = "blocked"
)

// Derived event-level labels.
const (
	EventCompleted = "completed"
	EventActive    = "active"
	EventPlanning  = "planning"
)

// CollectionFields maps each collection to its data fields, in schema order.
var CollectionFields = map[string][]string{
	CollectionMembers: {
		"type", "firstName", "lastName", "name", "email", "phone",
		"whatsapp", "specializedIn", "experience", "address", "offline",
	},
	CollectionEvents: {
		"eventName", "eventInfo", "startDate", "endDate", "eventDate",
		"status", "tasks", "assignedMembers", "currentStep", "completedSteps",
	},
	CollectionTaskStatus: {
		"taskId", "eventId", "status", "notes",
	},
	CollectionEventProgress: {
		"eventId", "totalTasks", "completedTasks", "inProgressTasks",
		"pendingTasks", "blockedTasks", "progressPercentage",
	},
}
