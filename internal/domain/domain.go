package domain

// Domain is the update status of one managed search domain as reported by
// the service at the time of the run.
type Domain struct {
	Name            string
	CurrentVersion  string
	NewVersion      string
	UpdateAvailable bool
}

// AccountContext identifies where a run executes. Alias is empty when the
// account alias could not be resolved.
type AccountContext struct {
	Alias  string
	Region string
}
