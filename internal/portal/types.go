package portal

// Outcome classifies the result of registering one descriptor
type Outcome string

const (
	// OutcomeRegistered means the location was newly registered
	OutcomeRegistered Outcome = "registered"
	// OutcomeRefreshed means the location already existed and was refreshed
	OutcomeRefreshed Outcome = "refreshed"
	// OutcomeFailed means registration did not succeed
	OutcomeFailed Outcome = "failed"
)

// Success reports whether the outcome counts as a successful registration
func (o Outcome) Success() bool {
	return o == OutcomeRegistered || o == OutcomeRefreshed
}

// Result is the per-repository registration result
type Result struct {
	Name    string
	Outcome Outcome
	Err     error
}

// locationRequest is the body of a catalog location registration
type locationRequest struct {
	Target string `json:"target"`
	Type   string `json:"type"`
}

// refreshRequest is the body of a catalog refresh for an existing entity
type refreshRequest struct {
	EntityRef string `json:"entityRef"`
}
