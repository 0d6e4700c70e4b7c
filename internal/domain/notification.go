package domain

import "fmt"

const consoleURLFormat = "https://console.aws.amazon.com/es/home?region=%s#domain:resource=%s;action=dashboard"

// DefaultReleaseNotesURL is the service software release table.
const DefaultReleaseNotesURL = "https://docs.aws.amazon.com/elasticsearch-service/latest/developerguide/release-notes.html#release-table"

// Notification is a single "update available" alert for one domain.
type Notification struct {
	Channel         string
	Domain          Domain
	Account         AccountContext
	ConsoleURL      string
	ReleaseNotesURL string
}

// ConsoleURL returns the console dashboard link for a domain.
func ConsoleURL(region, domainName string) string {
	return fmt.Sprintf(consoleURLFormat, region, domainName)
}
