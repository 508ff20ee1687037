package discord_bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"stickerme_bot/image_generator"
	"stickerme_bot/repositories"
)

func (b *botImpl) processDownloadButton(s interactionSession, i *discordgo.InteractionCreate, token string) {
	user := interactionUser(i.Interaction)
	if user == nil {
		b.respondEphemeral(s, i.Interaction, "❌ Failed to download image: unknown user")

		return
	}

	download, err := b.generator.Download(context.Background(), token, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("token", token).Str("member_id", user.ID).Msg("Error downloading image")

		b.respondEphemeral(s, i.Interaction, downloadErrorContent(err))

		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Here's your generated image (%s):", humanize.Bytes(uint64(len(download.Data)))),
			Files: []*discordgo.File{
				{
					ContentType: download.ContentType,
					Name:        download.Filename,
					Reader:      bytes.NewReader(download.Data),
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("interaction_id", i.ID).Msg("Error responding to download")
	}
}

func downloadErrorContent(err error) string {
	switch {
	case errors.Is(err, image_generator.ErrNotRequester):
		return "❌ Only the user who generated this image can download it."
	case errors.Is(err, &repositories.NotFoundError{}):
		return "❌ This image is no longer available."
	default:
		return fmt.Sprintf("❌ Failed to download image: %v", err)
	}
}

func (b *botImpl) respondEphemeral(s interactionSession, interaction *discordgo.Interaction, content string) {
	err := s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(content, maxContentLength),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("interaction_id", interaction.ID).Msg("Error responding to interaction")
	}
}
