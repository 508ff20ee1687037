package discord_bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"stickerme_bot/presets"
)

func usageField(option, what string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:  "Usage",
		Value: fmt.Sprintf("When using `/%s`, you can select %s from the dropdown menu in the `%s` parameter.", generateCommand, what, option),
	}
}

func stylesEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Available Style Presets",
		Description: fmt.Sprintf("Use these styles with the `/%s` command (select from dropdown)", generateCommand),
		Color:       colorGreen,
	}

	for _, style := range presets.Styles() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  style.Name,
			Value: style.Suffix,
		})
	}

	embed.Fields = append(embed.Fields, usageField(styleOption, "a style"))

	return embed
}

func aspectsEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Available Aspect Ratios",
		Description: fmt.Sprintf("Use these aspect ratios with the `/%s` command (select from dropdown)", generateCommand),
		Color:       colorGreen,
	}

	for _, ar := range presets.AspectRatios() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   ar.Name,
			Value:  fmt.Sprintf("%dx%d", ar.Width, ar.Height),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, usageField(aspectRatioOption, "an aspect ratio"))

	return embed
}

func qualitiesEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Available Quality Presets",
		Description: fmt.Sprintf("Use these quality settings with the `/%s` command (select from dropdown)", generateCommand),
		Color:       colorGreen,
	}

	for _, q := range presets.Qualities() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   q.Name,
			Value:  fmt.Sprintf("Steps: %d, CFG: %g", q.Steps, q.CfgScale),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, usageField(qualityOption, "a quality preset"))

	return embed
}

func (b *botImpl) processStylesCommand(s interactionSession, i *discordgo.InteractionCreate) {
	b.respondWithEmbed(s, i.Interaction, stylesEmbed())
}

func (b *botImpl) processAspectsCommand(s interactionSession, i *discordgo.InteractionCreate) {
	b.respondWithEmbed(s, i.Interaction, aspectsEmbed())
}

func (b *botImpl) processQualitiesCommand(s interactionSession, i *discordgo.InteractionCreate) {
	b.respondWithEmbed(s, i.Interaction, qualitiesEmbed())
}

func (b *botImpl) respondWithEmbed(s interactionSession, interaction *discordgo.Interaction, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("interaction_id", interaction.ID).Msg("Error responding to interaction")
	}
}
