package discord_bot

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"stickerme_bot/image_generator"
	"stickerme_bot/metrics"
)

const presenceText = "AI image generation with /generate"

type botImpl struct {
	botSession         *discordgo.Session
	guildID            string
	removeCommands     bool
	generator          image_generator.Generator
	registeredCommands []*discordgo.ApplicationCommand
}

type Config struct {
	BotToken string
	// GuildID limits command registration to one guild. Empty registers
	// commands globally.
	GuildID        string
	Generator      image_generator.Generator
	RemoveCommands bool
}

func New(cfg Config) (Bot, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("missing bot token")
	}

	if cfg.Generator == nil {
		return nil, errors.New("missing image generator")
	}

	botSession, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}

	bot := &botImpl{
		botSession:         botSession,
		guildID:            cfg.GuildID,
		removeCommands:     cfg.RemoveCommands,
		generator:          cfg.Generator,
		registeredCommands: make([]*discordgo.ApplicationCommand, 0),
	}

	botSession.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().
			Str("user", s.State.User.Username+"#"+s.State.User.Discriminator).
			Int("guilds", len(r.Guilds)).
			Msg("Logged in")

		if err := s.UpdateStatusComplex(presenceStatus()); err != nil {
			log.Warn().Err(err).Msg("Error setting presence")
		}
	})

	botSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.handleInteraction(s, i)
	})

	err = botSession.Open()
	if err != nil {
		return nil, err
	}

	err = bot.registerCommands()
	if err != nil {
		botSession.Close()

		return nil, err
	}

	return bot, nil
}

// presenceStatus shows the bot as "Watching AI image generation with /generate".
func presenceStatus() discordgo.UpdateStatusData {
	return discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name: presenceText,
				Type: discordgo.ActivityTypeWatching,
			},
		},
		Status: string(discordgo.StatusOnline),
	}
}

func (b *botImpl) Start(ctx context.Context) {
	log.Info().Msg("Press Ctrl+C to exit")

	<-ctx.Done()

	err := b.teardown()
	if err != nil {
		log.Error().Err(err).Msg("Error tearing down bot")
	}
}

func (b *botImpl) teardown() error {
	if b.removeCommands {
		for _, cmd := range b.registeredCommands {
			log.Info().Str("command", cmd.Name).Msg("Removing command")

			err := b.botSession.ApplicationCommandDelete(b.botSession.State.User.ID, b.guildID, cmd.ID)
			if err != nil {
				log.Error().Err(err).Str("command", cmd.Name).Msg("Error deleting command")
			}
		}
	}

	return b.botSession.Close()
}

func (b *botImpl) registerCommands() error {
	for _, command := range commands() {
		log.Info().Str("command", command.Name).Str("guild", b.guildID).Msg("Adding command")

		cmd, err := b.botSession.ApplicationCommandCreate(b.botSession.State.User.ID, b.guildID, command)
		if err != nil {
			log.Error().Err(err).Str("command", command.Name).Msg("Error creating command")

			return err
		}

		b.registeredCommands = append(b.registeredCommands, cmd)
	}

	return nil
}

func (b *botImpl) handleInteraction(s interactionSession, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name

		switch name {
		case generateCommand:
			b.processGenerateCommand(s, i)
		case stylesCommand:
			b.processStylesCommand(s, i)
		case aspectsCommand:
			b.processAspectsCommand(s, i)
		case qualitiesCommand:
			b.processQualitiesCommand(s, i)
		default:
			log.Warn().Str("command", name).Msg("Unknown command")

			return
		}

		metrics.CommandsTotal.WithLabelValues(name).Inc()
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		switch {
		case strings.HasPrefix(customID, downloadCustomIDPrefix):
			b.processDownloadButton(s, i, strings.TrimPrefix(customID, downloadCustomIDPrefix))
			metrics.CommandsTotal.WithLabelValues("download").Inc()
		default:
			log.Warn().Str("custom_id", customID).Msg("Unknown message component")
		}
	}
}

// interactionUser returns the invoking user for both guild and DM interactions.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}

func displayName(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}

	if user := interactionUser(i); user != nil {
		return user.Username
	}

	return "unknown"
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-1]) + "…"
}
