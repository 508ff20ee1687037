package discord_bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type Bot interface {
	// Start blocks until ctx is cancelled, then tears the session down.
	Start(ctx context.Context)
}

// interactionSession is the part of *discordgo.Session the handlers use.
type interactionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	InteractionResponseDelete(interaction *discordgo.Interaction) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams) (*discordgo.Message, error)
}
