package discord_bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"stickerme_bot/presets"
)

const (
	generateCommand  = "generate"
	stylesCommand    = "styles"
	aspectsCommand   = "aspects"
	qualitiesCommand = "qualities"

	promptOption      = "prompt"
	aspectRatioOption = "aspect_ratio"
	qualityOption     = "quality"
	styleOption       = "style"
	widthOption       = "width"
	heightOption      = "height"
	cfgScaleOption    = "cfg_scale"
	stepsOption       = "steps"

	downloadCustomIDPrefix = "generate_download:"
)

func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        generateCommand,
			Description: "Generate an AI image with advanced parameters",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        promptOption,
					Description: "The image description/prompt",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        aspectRatioOption,
					Description: "Aspect ratio preset",
					Choices:     aspectRatioChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        qualityOption,
					Description: "Quality preset",
					Choices:     qualityChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        styleOption,
					Description: "Style preset",
					Choices:     styleChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        widthOption,
					Description: fmt.Sprintf("Custom width (%d-%d)", presets.MinDimension, presets.MaxDimension),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        heightOption,
					Description: fmt.Sprintf("Custom height (%d-%d)", presets.MinDimension, presets.MaxDimension),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        cfgScaleOption,
					Description: fmt.Sprintf("CFG scale (%d-%d, higher = more prompt adherence)", presets.MinCfgScale, presets.MaxCfgScale),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        stepsOption,
					Description: fmt.Sprintf("Number of steps (%d-%d, higher = better quality but slower)", presets.MinSteps, presets.MaxSteps),
				},
			},
		},
		{
			Name:        stylesCommand,
			Description: "Show available style presets",
		},
		{
			Name:        aspectsCommand,
			Description: "Show available aspect ratios",
		},
		{
			Name:        qualitiesCommand,
			Description: "Show available quality presets",
		},
	}
}

func aspectRatioChoices() []*discordgo.ApplicationCommandOptionChoice {
	ratios := presets.AspectRatios()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(ratios))

	for _, ar := range ratios {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%dx%d)", ar.Name, ar.Width, ar.Height),
			Value: ar.Key,
		})
	}

	return choices
}

func qualityChoices() []*discordgo.ApplicationCommandOptionChoice {
	qualities := presets.Qualities()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(qualities))

	for _, q := range qualities {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%d steps)", q.Name, q.Steps),
			Value: q.Key,
		})
	}

	return choices
}

func styleChoices() []*discordgo.ApplicationCommandOptionChoice {
	styles := presets.Styles()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(styles)+1)

	choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
		Name:  presets.StyleName(presets.StyleNone),
		Value: presets.StyleNone,
	})

	for _, s := range styles {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  s.Name,
			Value: s.Key,
		})
	}

	return choices
}
