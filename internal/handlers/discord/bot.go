package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/delivery"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_session.go github.com/KirkDiggler/rajamantri/internal/handlers/discord Session

// Prefix marks connection IDs owned by the Discord gateway
const Prefix = "discord"

// DefaultOutboxSize bounds the notifications waiting to be sent to Discord
const DefaultOutboxSize = 256

// Session is the part of the Discord REST API the bot sends through.
// *discordgo.Session satisfies it.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Bot represents the Discord bot instance. It turns slash commands and
// button presses into game intents and implements delivery.Transport so room
// notifications reach Discord players.
type Bot struct {
	discord     *discordgo.Session
	session     Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	gameService game.Service
	messaging   messaging.Service
	channels    *channelMap
	config      *Config
	log         zerolog.Logger

	dmMu       sync.Mutex
	dmChannels map[string]string // Maps user ID to DM channel ID

	outbox     chan outbound
	stopOutbox context.CancelFunc
	outboxDone chan struct{}
}

// outbound is one queued Deliver call
type outbound struct {
	notification  *models.Notification
	connectionIDs []string
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Game service
	GameService game.Service

	// Messaging renders user-friendly error texts
	Messaging messaging.Service

	// Logger is optional
	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	// Create a new Discord session
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot, err := newBot(cfg, dg)
	if err != nil {
		return nil, err
	}
	bot.discord = dg

	// Register the interaction handler
	dg.AddHandler(bot.onInteraction)

	return bot, nil
}

func newBot(cfg *Config, session Session) (*Bot, error) {
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		gameService: cfg.GameService,
		messaging:   cfg.Messaging,
		channels:    newChannelMap(),
		config:      cfg,
		log:         zerolog.Nop(),
		dmChannels:  make(map[string]string),
		outbox:      make(chan outbound, DefaultOutboxSize),
	}
	if cfg.Logger != nil {
		bot.log = cfg.Logger.With().Str("component", "discord").Logger()
	}

	cmd := NewRajaMantriCommand(bot)
	bot.commands[cmd.GetName()] = cmd

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if b.discord == nil {
		return errors.New("bot has no discord connection")
	}

	// Open the websocket connection to Discord
	if err := b.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range b.commands {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.stopOutbox = cancel
	b.outboxDone = make(chan struct{})
	go b.runOutbox(ctx, b.outboxDone)

	b.log.Info().Msg("Discord bot is running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	if b.discord == nil {
		return nil
	}

	if b.stopOutbox != nil {
		b.stopOutbox()
		<-b.outboxDone
	}

	appID := b.applicationID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.discord.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn().Err(err).Str("command", cmdName).Msg("failed to delete command")
		}
	}

	return b.discord.Close()
}

// RegisterCommand registers a command with Discord. Without a guild ID the
// command is registered globally.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.discord.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info().Str("command", cmd.GetName()).Str("guild", b.config.GuildID).Msg("registered command")

	return nil
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.discord.State.User.ID
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(context.Background(), i)
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			err = h.Handle(ctx, i)
		}
	case discordgo.InteractionMessageComponent:
		err = b.handleComponent(ctx, i)
	}

	if err != nil {
		b.log.Error().Err(err).Msg("failed to handle interaction")
	}
}

// Deliver queues a notification for the Discord players in connectionIDs and
// returns without waiting on the Discord API. Queued notifications are sent
// in order by a single goroutine; a full queue drops the notification.
func (b *Bot) Deliver(ctx context.Context, notification *models.Notification, connectionIDs []string) error {
	select {
	case b.outbox <- outbound{notification: notification, connectionIDs: connectionIDs}:
		return nil
	default:
		return fmt.Errorf("discord outbox full, dropping %s for room %s", notification.Event, notification.RoomCode)
	}
}

// runOutbox sends queued notifications until ctx is cancelled
func (b *Bot) runOutbox(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-b.outbox:
			if err := b.send(ctx, out.notification, out.connectionIDs); err != nil {
				b.log.Error().
					Err(err).
					Str("room", out.notification.RoomCode).
					Str("event", string(out.notification.Event)).
					Msg("failed to send notification to discord")
			}
		}
	}
}

// send posts a notification to the Discord players in connectionIDs.
// Broadcasts are posted once to the channel the room is played in; secret
// roles go out as direct messages. Other private events are already answered
// by the interaction response and are skipped.
func (b *Bot) send(ctx context.Context, notification *models.Notification, connectionIDs []string) error {
	if notification.Private {
		if notification.Event != models.EventRoleAssigned {
			return nil
		}

		assignment, ok := notification.Data.(models.RoleAssignment)
		if !ok {
			return fmt.Errorf("unexpected role assignment payload %T", notification.Data)
		}

		var errs []error
		for _, id := range connectionIDs {
			_, userID, ok := delivery.SplitConnectionID(id)
			if !ok {
				continue
			}
			if err := b.sendDirect(userID, renderRoleAssignment(notification.RoomCode, assignment)); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	channelID, ok := b.channels.Lookup(notification.RoomCode)
	if !ok {
		b.log.Debug().Str("room", notification.RoomCode).Str("event", string(notification.Event)).Msg("room has no discord channel")
		return nil
	}

	msg, ok := renderNotification(notification)
	if !ok {
		return nil
	}

	if _, err := b.session.ChannelMessageSendComplex(channelID, msg); err != nil {
		return fmt.Errorf("failed to post %s to channel %s: %w", notification.Event, channelID, err)
	}
	return nil
}

func (b *Bot) sendDirect(userID string, msg *discordgo.MessageSend) error {
	b.dmMu.Lock()
	channelID, ok := b.dmChannels[userID]
	b.dmMu.Unlock()

	if !ok {
		channel, err := b.session.UserChannelCreate(userID)
		if err != nil {
			return fmt.Errorf("failed to open DM with %s: %w", userID, err)
		}
		channelID = channel.ID

		b.dmMu.Lock()
		b.dmChannels[userID] = channelID
		b.dmMu.Unlock()
	}

	if _, err := b.session.ChannelMessageSendComplex(channelID, msg); err != nil {
		return fmt.Errorf("failed to send DM to %s: %w", userID, err)
	}
	return nil
}

// channelMap remembers which Discord channel each room is played in
type channelMap struct {
	mu     sync.RWMutex
	byRoom map[string]string
}

func newChannelMap() *channelMap {
	return &channelMap{byRoom: make(map[string]string)}
}

// Bind maps a room to a channel unless the room already has one.
// It reports whether a new binding was made.
func (m *channelMap) Bind(roomCode, channelID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byRoom[roomCode]; ok {
		return false
	}
	m.byRoom[roomCode] = channelID
	return true
}

func (m *channelMap) Unbind(roomCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byRoom, roomCode)
}

func (m *channelMap) Lookup(roomCode string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	channelID, ok := m.byRoom[roomCode]
	return channelID, ok
}

// RoomIn returns a room played in the channel, if any
func (m *channelMap) RoomIn(channelID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for roomCode, id := range m.byRoom {
		if id == channelID {
			return roomCode, true
		}
	}
	return "", false
}
