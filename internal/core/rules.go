package core

// PocketBase API Rules (Constants)
const (
	// RulePublic opens the collection API; access control lives outside this
	// service.
	RulePublic = ""

	RuleAuthOnly = "@request.auth.id != ''"
)
