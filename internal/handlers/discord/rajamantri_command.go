package discord

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/delivery"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
)

// CommandName is the slash command the bot registers
const CommandName = "rajamantri"

// defaultTotalRounds applies when create omits rounds
const defaultTotalRounds = 3

// RajaMantriCommand handles the /rajamantri command
type RajaMantriCommand struct {
	BaseCommand
	bot *Bot
}

// NewRajaMantriCommand creates a new rajamantri command handler
func NewRajaMantriCommand(bot *Bot) *RajaMantriCommand {
	minRounds := float64(game.MinTotalRounds)

	playerChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(catalog.Capacities()))
	for _, capacity := range catalog.Capacities() {
		playerChoices = append(playerChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%d players", capacity),
			Value: capacity,
		})
	}

	playersOption := func(required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "players",
			Description: "Number of seats at the table",
			Required:    required,
			Choices:     playerChoices,
		}
	}
	roundsOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "rounds",
		Description: "How many rounds to play",
		MinValue:    &minRounds,
		MaxValue:    float64(game.MaxTotalRounds),
	}

	return &RajaMantriCommand{
		BaseCommand: BaseCommand{
			Name:        CommandName,
			Description: "Raja Mantri Chor Sipahi",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open a new court in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						playersOption(true),
						roundsOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "How accusations are judged",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Immediate", Value: string(models.AdjudicationImmediate)},
								{Name: "Decision maker rules", Value: string(models.AdjudicationDecisionMaker)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join a court by its code",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "Room code",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave your court",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Deal the roles (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reveal",
					Description: "Show your role to the court",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "next",
					Description: "Move to the next round (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "settings",
					Description: "Change seats or rounds before the game starts (host only)",
					Options:     []*discordgo.ApplicationCommandOption{playersOption(false), roundsOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "again",
					Description: "Reset a finished game (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "chat",
					Description: "Say something to the court",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "Message text",
							Required:    true,
							MaxLength:   game.MaxChatLength,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show a court's players and scores",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "Room code, defaults to the court in this channel",
						},
					},
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the rajamantri command
func (c *RajaMantriCommand) Handle(ctx context.Context, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	b := c.bot
	connectionID, name := interactionPlayer(i)
	if connectionID == "" || len(data.Options) == 0 {
		return b.respondError(ctx, i, game.ErrBadRequest)
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		return c.handleCreate(ctx, i, connectionID, name, opts)
	case "join":
		return b.join(ctx, i, connectionID, name, stringOption(opts, "code"))
	case "leave":
		return b.leave(ctx, i, connectionID)
	case "start":
		return b.start(ctx, i, connectionID)
	case "reveal":
		return b.reveal(ctx, i, connectionID)
	case "next":
		return b.advance(ctx, i, connectionID)
	case "settings":
		return c.handleSettings(ctx, i, connectionID, opts)
	case "again":
		return b.playAgain(ctx, i, connectionID)
	case "chat":
		return c.handleChat(ctx, i, connectionID, stringOption(opts, "message"))
	case "status":
		return c.handleStatus(ctx, i, stringOption(opts, "code"))
	}

	return b.respondError(ctx, i, game.ErrBadRequest)
}

func (c *RajaMantriCommand) handleCreate(ctx context.Context, i *discordgo.InteractionCreate, connectionID, name string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	b := c.bot

	capacity, ok := intOption(opts, "players")
	if !ok {
		return b.respondError(ctx, i, game.ErrInvalidSettings)
	}
	rounds, ok := intOption(opts, "rounds")
	if !ok {
		rounds = defaultTotalRounds
	}

	output, err := b.gameService.CreateRoom(ctx, &game.CreateRoomInput{
		ConnectionID: connectionID,
		DisplayName:  name,
		Capacity:     capacity,
		TotalRounds:  rounds,
		Adjudication: models.Adjudication(stringOption(opts, "mode")),
	})
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	b.channels.Bind(output.RoomCode, i.ChannelID)

	embed := renderRoom(fmt.Sprintf("Court %s is open", output.RoomCode), output.Room)
	embed.Description = fmt.Sprintf("%s is hosting. Press Join or use `/%s join code:%s`.", name, CommandName, output.RoomCode)
	return RespondWithEmbedAndButtons(b.session, i, embed, lobbyButtonSet(output.RoomCode))
}

func (c *RajaMantriCommand) handleSettings(ctx context.Context, i *discordgo.InteractionCreate, connectionID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	b := c.bot

	input := &game.UpdateRoomSettingsInput{ConnectionID: connectionID}
	if capacity, ok := intOption(opts, "players"); ok {
		input.Capacity = &capacity
	}
	if rounds, ok := intOption(opts, "rounds"); ok {
		input.TotalRounds = &rounds
	}

	output, err := b.gameService.UpdateRoomSettings(ctx, input)
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	return RespondWithEphemeralMessage(b.session, i,
		fmt.Sprintf("Court now seats %d for %d rounds.", output.Capacity, output.TotalRounds))
}

func (c *RajaMantriCommand) handleChat(ctx context.Context, i *discordgo.InteractionCreate, connectionID, message string) error {
	b := c.bot

	if _, err := b.gameService.SendChat(ctx, &game.SendChatInput{
		ConnectionID: connectionID,
		Message:      message,
	}); err != nil {
		return b.respondError(ctx, i, err)
	}

	return RespondWithEphemeralMessage(b.session, i, "Sent.")
}

func (c *RajaMantriCommand) handleStatus(ctx context.Context, i *discordgo.InteractionCreate, code string) error {
	b := c.bot

	if code == "" {
		bound, ok := b.channels.RoomIn(i.ChannelID)
		if !ok {
			return b.respondError(ctx, i, game.ErrRoomNotFound)
		}
		code = bound
	}

	output, err := b.gameService.GetRoom(ctx, &game.GetRoomInput{RoomCode: code})
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	return RespondWithEphemeralEmbed(b.session, i, renderRoom(fmt.Sprintf("Court %s", output.Room.Code), output.Room))
}

// handleComponent handles button clicks and menu selections
func (b *Bot) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) error {
	connectionID, name := interactionPlayer(i)
	if connectionID == "" {
		return b.respondError(ctx, i, game.ErrBadRequest)
	}

	data := i.MessageComponentData()
	action, arg, _ := strings.Cut(data.CustomID, customIDSeparator)

	switch action {
	case ButtonJoin:
		return b.join(ctx, i, connectionID, name, arg)
	case ButtonStart:
		return b.start(ctx, i, connectionID)
	case ButtonReveal:
		return b.reveal(ctx, i, connectionID)
	case SelectGuess:
		if len(data.Values) == 0 {
			return b.respondError(ctx, i, game.ErrInvalidTarget)
		}
		return b.guess(ctx, i, connectionID, data.Values[0])
	case ButtonDecideCorrect:
		return b.decide(ctx, i, connectionID, true)
	case ButtonDecideWrong:
		return b.decide(ctx, i, connectionID, false)
	case ButtonNextRound:
		return b.advance(ctx, i, connectionID)
	case ButtonPlayAgain:
		return b.playAgain(ctx, i, connectionID)
	}

	return b.respondError(ctx, i, game.ErrBadRequest)
}

func (b *Bot) join(ctx context.Context, i *discordgo.InteractionCreate, connectionID, name, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	// bind first so the join broadcast reaches this channel
	bound := b.channels.Bind(code, i.ChannelID)

	output, err := b.gameService.JoinRoom(ctx, &game.JoinRoomInput{
		ConnectionID: connectionID,
		RoomCode:     code,
		DisplayName:  name,
	})
	if err != nil {
		if bound {
			b.channels.Unbind(code)
		}
		return b.respondError(ctx, i, err)
	}

	return RespondWithEphemeralMessage(b.session, i,
		fmt.Sprintf("You joined court %s. Your role will arrive by direct message.", output.RoomCode))
}

func (b *Bot) leave(ctx context.Context, i *discordgo.InteractionCreate, connectionID string) error {
	output, err := b.gameService.LeaveRoom(ctx, &game.LeaveRoomInput{ConnectionID: connectionID})
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	if output.RoomDeleted {
		b.channels.Unbind(output.RoomCode)
	}

	return RespondWithEphemeralMessage(b.session, i, fmt.Sprintf("You left court %s.", output.RoomCode))
}

func (b *Bot) start(ctx context.Context, i *discordgo.InteractionCreate, connectionID string) error {
	if _, err := b.gameService.StartGame(ctx, &game.StartGameInput{ConnectionID: connectionID}); err != nil {
		return b.respondError(ctx, i, err)
	}
	return RespondWithEphemeralMessage(b.session, i, "Roles are dealt. Check your direct messages.")
}

func (b *Bot) reveal(ctx context.Context, i *discordgo.InteractionCreate, connectionID string) error {
	output, err := b.gameService.RevealRole(ctx, &game.RevealRoleInput{ConnectionID: connectionID})
	if err != nil {
		return b.respondError(ctx, i, err)
	}
	return RespondWithEphemeralMessage(b.session, i, fmt.Sprintf("You revealed yourself as the %s.", output.Role.Title()))
}

func (b *Bot) guess(ctx context.Context, i *discordgo.InteractionCreate, connectionID, targetID string) error {
	output, err := b.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
		ConnectionID: connectionID,
		TargetID:     targetID,
	})
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	if output.Pending {
		return RespondWithEphemeralMessage(b.session, i, "Accusation made. The court will rule on it.")
	}
	return RespondWithEphemeralMessage(b.session, i, "Accusation made.")
}

func (b *Bot) decide(ctx context.Context, i *discordgo.InteractionCreate, connectionID string, isCorrect bool) error {
	if _, err := b.gameService.ConfirmDecision(ctx, &game.ConfirmDecisionInput{
		ConnectionID: connectionID,
		IsCorrect:    isCorrect,
	}); err != nil {
		return b.respondError(ctx, i, err)
	}
	return RespondWithEphemeralMessage(b.session, i, "Ruling recorded.")
}

func (b *Bot) advance(ctx context.Context, i *discordgo.InteractionCreate, connectionID string) error {
	output, err := b.gameService.AdvanceRound(ctx, &game.AdvanceRoundInput{ConnectionID: connectionID})
	if err != nil {
		return b.respondError(ctx, i, err)
	}

	if output.GameOver {
		return RespondWithEphemeralMessage(b.session, i, "That was the last round.")
	}
	return RespondWithEphemeralMessage(b.session, i, fmt.Sprintf("Round %d dealt.", output.Round))
}

func (b *Bot) playAgain(ctx context.Context, i *discordgo.InteractionCreate, connectionID string) error {
	if _, err := b.gameService.PlayAgain(ctx, &game.PlayAgainInput{ConnectionID: connectionID}); err != nil {
		return b.respondError(ctx, i, err)
	}
	return RespondWithEphemeralMessage(b.session, i, "Back to the lobby.")
}

// respondError shows a rejected intent to the invoking user only
func (b *Bot) respondError(ctx context.Context, i *discordgo.InteractionCreate, err error) error {
	kind := game.KindOf(err)
	if kind == game.KindInternal {
		b.log.Error().Err(err).Msg("intent failed")
	}

	title, message := "Error", game.PublicMessage(err)
	output, msgErr := b.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Kind: string(kind)})
	if msgErr == nil && output != nil {
		title, message = output.Title, output.Message
	}

	return RespondWithEphemeralEmbed(b.session, i, renderError(title, message))
}

// interactionPlayer returns the connection ID and display name of whoever
// triggered the interaction. Guild interactions carry a member, DMs a user.
func interactionPlayer(i *discordgo.InteractionCreate) (string, string) {
	var user *discordgo.User
	var nick string
	if i.Member != nil {
		user = i.Member.User
		nick = i.Member.Nick
	}
	if user == nil {
		user = i.User
	}
	if user == nil || user.ID == "" {
		return "", ""
	}

	name := nick
	if name == "" {
		name = user.GlobalName
	}
	if name == "" {
		name = user.Username
	}

	return delivery.ConnectionID(Prefix, user.ID), truncateName(name)
}

func truncateName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= game.MaxDisplayNameLength {
		return name
	}
	return strings.TrimSpace(string([]rune(name)[:game.MaxDisplayNameLength]))
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(opt.IntValue()), true
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}
