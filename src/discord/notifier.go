// Package discord delivers completed-search summaries to a channel. The
// session is REST-only; no gateway connection is opened.
package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/stake-plus/company-scout/src/types"
)

type Notifier struct {
	session   *discordgo.Session
	channelID string
}

func NewNotifier(token, channelID string) (*Notifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Notifier{session: session, channelID: channelID}, nil
}

// SearchCompleted posts a short summary. Delivery is best effort; a failed
// send is logged and dropped.
func (n *Notifier) SearchCompleted(rep *types.Report) {
	if _, err := n.session.ChannelMessageSend(n.channelID, summarize(rep)); err != nil {
		log.Printf("discord: failed to send search summary: %v", err)
	}
}

func summarize(rep *types.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Company search: %s**\n", rep.Company)

	if len(rep.Orgs) == 0 {
		b.WriteString("No GitHub organization resolved.\n")
	}
	for _, org := range rep.Orgs {
		marker := ""
		if !org.Verified {
			marker = " (unverified)"
		}
		fmt.Fprintf(&b, "• <%s>%s — %d member(s), via %s\n", org.URL, marker, len(org.Members), org.Provenance)
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(&b, "%d warning(s) during the search.\n", len(rep.Warnings))
	}
	fmt.Fprintf(&b, "Report ID: `%s`", rep.ID)
	return b.String()
}
