package slack

import (
	slackapi "github.com/slack-go/slack"

	"es-update-notifier/internal/domain"
)

// Blocks renders the Block Kit body for an update notification: a headline
// linking to the domain dashboard, then account, region, current version and
// a release-notes link for the new version, in that order.
func Blocks(n domain.Notification) []slackapi.Block {
	headline := mrkdwn("A new ElasticSearch cluster update is available\n*" + link(n.ConsoleURL, n.Domain.Name) + "*")

	fields := []*slackapi.TextBlockObject{
		mrkdwn("*AWS Account:*\n" + n.Account.Alias),
		mrkdwn("*Region:*\n" + n.Account.Region),
		mrkdwn("*Current Version:*\n" + n.Domain.CurrentVersion),
		mrkdwn("New Version:\n*" + link(n.ReleaseNotesURL, n.Domain.NewVersion) + "*"),
	}

	return []slackapi.Block{
		slackapi.NewSectionBlock(headline, nil, nil),
		slackapi.NewSectionBlock(nil, fields, nil),
	}
}

func mrkdwn(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false)
}

func link(url, label string) string {
	return "<" + url + "|" + label + ">"
}
