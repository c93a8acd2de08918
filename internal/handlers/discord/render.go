package discord

import (
	"fmt"
	"html"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
)

const (
	colorInfo  = 0x00ff00 // Green color
	colorError = 0xff0000 // Red color
	colorCourt = 0xd4af37 // Gold, used for rounds and results
)

// Component custom IDs
const (
	ButtonJoin          = "rmcs_join" // suffixed with ":<room code>"
	ButtonStart         = "rmcs_start"
	ButtonReveal        = "rmcs_reveal"
	ButtonDecideCorrect = "rmcs_decide_correct"
	ButtonDecideWrong   = "rmcs_decide_wrong"
	ButtonNextRound     = "rmcs_next"
	ButtonPlayAgain     = "rmcs_again"

	SelectGuess = "rmcs_guess"
)

const customIDSeparator = ":"

// renderNotification turns a room broadcast into a channel message.
// It reports false for events that are not shown in Discord.
func renderNotification(n *models.Notification) (*discordgo.MessageSend, bool) {
	switch data := n.Data.(type) {
	case models.MembershipUpdate:
		embed := renderMembership(n.RoomCode, data)
		msg := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}
		if n.Event == models.EventPlayerJoined {
			msg.Components = lobbyButtons(n.RoomCode)
		}
		return msg, true

	case models.RoundInfo:
		return &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{renderRound(data)},
			Components: roundComponents(data.Players),
		}, true

	case models.RoleReveal:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       fmt.Sprintf("%s is the %s", data.PlayerName, data.Role.Title()),
				Description: playerList(data.Players),
				Color:       colorInfo,
			}},
		}, true

	case models.GuessPendingInfo:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       fmt.Sprintf("%s accuses %s", data.GuesserName, data.AccusedName),
				Description: data.Message,
				Color:       colorCourt,
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Waiting for the %s to rule", data.DecisionMaker.Title()),
				},
			}},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Chor caught", Style: discordgo.SuccessButton, CustomID: ButtonDecideCorrect},
					discordgo.Button{Label: "Wrong guess", Style: discordgo.DangerButton, CustomID: ButtonDecideWrong},
				}},
			},
		}, true

	case models.GuessOutcome:
		return &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{renderOutcome(data)},
			Components: singleButton("Next Round", discordgo.PrimaryButton, ButtonNextRound),
		}, true

	case models.RoundVoided:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       fmt.Sprintf("Round %d voided", data.Round),
				Description: data.Message,
				Color:       colorError,
				Fields:      optionalField("Roles", playerList(data.RevealedRoles)),
			}},
			Components: singleButton("Next Round", discordgo.PrimaryButton, ButtonNextRound),
		}, true

	case models.GameEnd:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Game over",
				Description: data.Message,
				Color:       colorCourt,
				Fields:      optionalField("Final Scores", standingsTable(data.FinalScores)),
			}},
			Components: singleButton("Play Again", discordgo.SuccessButton, ButtonPlayAgain),
		}, true

	case models.ResetNotice:
		title := "Back to the lobby"
		color := colorInfo
		if n.Event == models.EventGameAborted {
			title = "Game aborted"
			color = colorError
		}
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       title,
				Description: data.Message,
				Color:       color,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Players", Value: seats(len(data.Players), data.Capacity), Inline: true},
					{Name: "Rounds", Value: fmt.Sprintf("%d", data.TotalRounds), Inline: true},
				},
			}},
			Components: lobbyButtons(data.RoomCode),
		}, true

	case models.SettingsUpdate:
		return &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Settings updated",
				Description: data.Message,
				Color:       colorInfo,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Max Players", Value: fmt.Sprintf("%d", data.Capacity), Inline: true},
					{Name: "Rounds", Value: fmt.Sprintf("%d", data.TotalRounds), Inline: true},
				},
			}},
		}, true

	case models.ChatMessage:
		// chat is escaped for browsers; Discord renders its own markdown
		return &discordgo.MessageSend{
			Content:         fmt.Sprintf("**%s**: %s", data.SenderName, html.UnescapeString(data.Message)),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}, true
	}

	return nil, false
}

func renderMembership(roomCode string, update models.MembershipUpdate) *discordgo.MessageEmbed {
	description := update.Message
	if update.NewHost != nil {
		description = strings.TrimSpace(description + "\n" + update.NewHost.Message)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Court %s", roomCode),
		Description: description,
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: seats(update.PlayerCount, update.Capacity), Inline: true},
			{Name: "Rounds", Value: fmt.Sprintf("%d", update.TotalRounds), Inline: true},
			{Name: "Participants", Value: orNone(playerList(update.Players)), Inline: false},
		},
	}
}

func renderRound(info models.RoundInfo) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Round %d of %d", info.CurrentRound, info.TotalRounds),
		Description: info.Message,
		Color:       colorCourt,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: orNone(playerList(info.Players)), Inline: false},
			{Name: "Decision Maker", Value: info.DecisionMaker.Title(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Roles were sent by direct message"},
	}
}

func renderOutcome(outcome models.GuessOutcome) *discordgo.MessageEmbed {
	title := "Wrong guess"
	color := colorError
	if outcome.WasCorrect {
		title = "Chor caught!"
		color = colorInfo
	}

	fields := optionalField("Roles", playerList(outcome.RevealedRoles))
	fields = append(fields, optionalField("Scores", standingsTable(outcome.Scores))...)

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: outcome.Message,
		Color:       color,
		Fields:      fields,
	}
}

// renderRoleAssignment is the direct message telling a player their role
func renderRoleAssignment(roomCode string, assignment models.RoleAssignment) *discordgo.MessageSend {
	var hint string
	switch assignment.Role {
	case catalog.AccusingRole:
		hint = fmt.Sprintf("Find the %s and accuse them from the round message.", catalog.AccusedRole.Title())
	case catalog.AccusedRole:
		hint = "Keep a straight face."
	default:
		hint = fmt.Sprintf("Reveal yourself when you like, then watch the %s hunt.", catalog.AccusingRole.Title())
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("You are the %s", assignment.Role.Title()),
			Description: hint,
			Color:       colorCourt,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Worth", Value: fmt.Sprintf("%d points", assignment.BaseScore), Inline: true},
				{Name: "Round", Value: fmt.Sprintf("%d of %d", assignment.CurrentRound, assignment.TotalRounds), Inline: true},
				{Name: "Court", Value: roomCode, Inline: true},
			},
		}},
	}
}

// renderRoom shows a room snapshot, used by /rajamantri status and create
func renderRoom(title string, room *game.RoomSnapshot) *discordgo.MessageEmbed {
	if room == nil {
		return &discordgo.MessageEmbed{Title: title, Color: colorInfo}
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Status", Value: string(room.State), Inline: true},
		{Name: "Players", Value: seats(len(room.Players), room.Capacity), Inline: true},
		{Name: "Round", Value: fmt.Sprintf("%d of %d", room.CurrentRound, room.TotalRounds), Inline: true},
		{Name: "Participants", Value: orNone(playerList(room.Players)), Inline: false},
	}
	fields = append(fields, optionalField("Scores", standingsTable(room.Scores))...)

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  colorInfo,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Room code " + room.Code},
	}
}

func renderError(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorError,
	}
}

func lobbyButtons(roomCode string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: lobbyButtonSet(roomCode)},
	}
}

func lobbyButtonSet(roomCode string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.SuccessButton,
			CustomID: ButtonJoin + customIDSeparator + roomCode,
		},
		discordgo.Button{
			Label:    "Start Game",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonStart,
		},
	}
}

// roundComponents offers the reveal button and the accusation menu.
// Every player is listed; the service rejects accusations from the wrong role.
func roundComponents(players []models.PublicPlayer) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Reveal My Role", Style: discordgo.SecondaryButton, CustomID: ButtonReveal},
		}},
	}

	if len(players) == 0 {
		return components
	}

	options := make([]discordgo.SelectMenuOption, 0, len(players))
	for _, p := range players {
		options = append(options, discordgo.SelectMenuOption{
			Label: p.Name,
			Value: p.ID,
		})
	}

	return append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    SelectGuess,
			Placeholder: fmt.Sprintf("%s: who is the %s?", catalog.AccusingRole.Title(), catalog.AccusedRole.Title()),
			Options:     options,
		},
	}})
}

func singleButton(label string, style discordgo.ButtonStyle, customID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: label, Style: style, CustomID: customID},
		}},
	}
}

// playerList renders one line per player, with the role once it is public
func playerList(players []models.PublicPlayer) string {
	var sb strings.Builder
	for _, p := range players {
		sb.WriteString("**" + p.Name + "**")
		if p.IsHost {
			sb.WriteString(" (host)")
		}
		if p.RoleRevealed && p.Role != catalog.RoleNone {
			sb.WriteString(" - " + p.Role.Title())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func standingsTable(standings []models.Standing) string {
	var sb strings.Builder
	for _, s := range standings {
		fmt.Fprintf(&sb, "%d. **%s**: %d\n", s.Rank, s.PlayerName, s.TotalScore)
	}
	return sb.String()
}

func optionalField(name, value string) []*discordgo.MessageEmbedField {
	if value == "" {
		return nil
	}
	return []*discordgo.MessageEmbedField{{Name: name, Value: value, Inline: false}}
}

func seats(count, capacity int) string {
	return fmt.Sprintf("%d/%d", count, capacity)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
