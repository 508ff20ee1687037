package discord_bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"stickerme_bot/entities"
	"stickerme_bot/image_generator"
	"stickerme_bot/imagine_request"
	"stickerme_bot/presets"
)

const (
	attachmentFilename = "generated_image.png"

	colorBlue  = 0x3498db
	colorGreen = 0x2ecc71

	maxContentLength     = 2000
	maxDescriptionLength = 4096
)

func generateOptions(data discordgo.ApplicationCommandInteractionData) imagine_request.Options {
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		optionMap[opt.Name] = opt
	}

	var opts imagine_request.Options

	if option, ok := optionMap[promptOption]; ok {
		opts.Prompt = option.StringValue()
	}

	if option, ok := optionMap[aspectRatioOption]; ok {
		opts.AspectRatio = option.StringValue()
	}

	if option, ok := optionMap[qualityOption]; ok {
		opts.Quality = option.StringValue()
	}

	if option, ok := optionMap[styleOption]; ok {
		opts.Style = option.StringValue()
	}

	if option, ok := optionMap[widthOption]; ok {
		width := int(option.IntValue())
		opts.Width = &width
	}

	if option, ok := optionMap[heightOption]; ok {
		height := int(option.IntValue())
		opts.Height = &height
	}

	if option, ok := optionMap[cfgScaleOption]; ok {
		cfgScale := float64(option.IntValue())
		opts.CfgScale = &cfgScale
	}

	if option, ok := optionMap[stepsOption]; ok {
		steps := int(option.IntValue())
		opts.Steps = &steps
	}

	return opts
}

func (b *botImpl) processGenerateCommand(s interactionSession, i *discordgo.InteractionCreate) {
	// generation takes longer than the initial response window
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Error().Err(err).Str("interaction_id", i.ID).Msg("Error deferring interaction")

		return
	}

	user := interactionUser(i.Interaction)
	if user == nil {
		b.respondGenerateError(s, i.Interaction, errors.New("could not determine the requesting user"))

		return
	}

	result, err := b.generator.Generate(context.Background(), &image_generator.GenerateRequest{
		Options:       generateOptions(i.ApplicationCommandData()),
		MemberID:      user.ID,
		InteractionID: i.ID,
	})
	if err != nil {
		b.respondGenerateError(s, i.Interaction, err)

		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, generatedImageMessage(result, displayName(i.Interaction)))
	if err != nil {
		log.Error().Err(err).Str("interaction_id", i.ID).Msg("Error sending generated image")
	}
}

// respondGenerateError replaces the deferred placeholder with a message only
// the requester can see.
func (b *botImpl) respondGenerateError(s interactionSession, interaction *discordgo.Interaction, genErr error) {
	err := s.InteractionResponseDelete(interaction)
	if err != nil {
		log.Warn().Err(err).Str("interaction_id", interaction.ID).Msg("Error deleting deferred response")
	}

	_, err = s.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Content: truncate(generateErrorContent(genErr), maxContentLength),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Error().Err(err).Str("interaction_id", interaction.ID).Msg("Error sending error response")
	}
}

func generateErrorContent(err error) string {
	var validationErr *imagine_request.ValidationError
	if errors.As(err, &validationErr) {
		return "❌ " + validationErr.Message
	}

	return fmt.Sprintf("❌ Failed to generate image: %v", err)
}

func generatedImageMessage(result *image_generator.Result, requester string) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{generatedImageEmbed(result.Request, requester)},
		Files: []*discordgo.File{
			{
				ContentType: result.ContentType,
				Name:        attachmentFilename,
				Reader:      bytes.NewReader(result.Image),
			},
		},
	}

	if result.DownloadToken != "" {
		params.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Download Image",
						Style:    discordgo.PrimaryButton,
						CustomID: downloadCustomIDPrefix + result.DownloadToken,
						Emoji: discordgo.ComponentEmoji{
							Name: "⬇️",
						},
					},
				},
			},
		}
	}

	return params
}

func generatedImageEmbed(req *entities.GenerationRequest, requester string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "AI Generated Image",
		Description: truncate(fmt.Sprintf("**Prompt:** %s", req.UserPrompt), maxDescriptionLength),
		Color:       colorBlue,
		Image: &discordgo.MessageEmbedImage{
			URL: "attachment://" + attachmentFilename,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Generated by %s | Powered by Stability AI", requester),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Dimensions", Value: fmt.Sprintf("%dx%d", req.Width, req.Height), Inline: true},
			{Name: "Quality", Value: presets.QualityName(req.Quality), Inline: true},
			{Name: "Style", Value: presets.StyleName(req.Style), Inline: true},
			{Name: "CFG Scale", Value: strconv.FormatFloat(req.CfgScale, 'f', -1, 64), Inline: true},
			{Name: "Steps", Value: strconv.Itoa(req.Steps), Inline: true},
		},
	}
}
