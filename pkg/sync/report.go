package sync

import "fmt"

// Report aggregates the outcome of one sync run. It is returned to the
// caller and logged, never persisted beyond the sync log entry.
type Report struct {
	RunID            string   `json:"run_id"`
	Success          bool     `json:"success"`
	BeersCreated     int      `json:"beers_created"`
	BeersUpdated     int      `json:"beers_updated"`
	TaplistSynced    int      `json:"taplist_synced"`
	ContainersSynced int      `json:"containers_synced"`
	Errors           []string `json:"errors"`
	Message          string   `json:"message"`
}

func (r *Report) summary() string {
	if len(r.Errors) > 0 {
		return fmt.Sprintf("Sync completed with %d error(s)", len(r.Errors))
	}

	return fmt.Sprintf("Success! Created %d beers, updated %d beers, synced %d taplist items",
		r.BeersCreated, r.BeersUpdated, r.TaplistSynced)
}
