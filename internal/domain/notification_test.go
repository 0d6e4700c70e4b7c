package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleURL(t *testing.T) {
	require.Equal(t,
		"https://console.aws.amazon.com/es/home?region=eu-west-1#domain:resource=logs-prod;action=dashboard",
		ConsoleURL("eu-west-1", "logs-prod"),
	)
}
