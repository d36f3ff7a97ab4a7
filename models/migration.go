package models

// MigrationFailure records one service that could not be migrated.
type MigrationFailure struct {
	ServiceID string `json:"serviceId"`
	Error     string `json:"error"`
}

// MigrationResult summarizes one backfill pass over all services.
// Success is true only when zero failures occurred.
type MigrationResult struct {
	Success   bool               `json:"success"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Failures  []MigrationFailure `json:"failures,omitempty"`
}
