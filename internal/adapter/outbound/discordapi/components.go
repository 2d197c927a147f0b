package discordapi

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/domain/model"
)

// maxButtonsPerRow is the platform limit on buttons in one action row.
const maxButtonsPerRow = 5

// buildComponents translates domain buttons into wire-format action rows,
// filling each row up to the platform limit before opening the next.
func buildComponents(buttons []model.Button) []discordgo.MessageComponent {
	if len(buttons) == 0 {
		return nil
	}
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			button := discordgo.Button{
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				CustomID: b.CustomID,
			}
			if b.Emoji != "" {
				button.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
			}
			row.Components = append(row.Components, button)
		}
		rows = append(rows, row)
	}
	return rows
}

func buttonStyle(style model.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case model.ButtonSuccess:
		return discordgo.SuccessButton
	case model.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

// MapChannelKind reduces the platform channel type to the coarse domain kind.
func MapChannelKind(t discordgo.ChannelType) model.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
		return model.ChannelText
	case discordgo.ChannelTypeGuildPublicThread, discordgo.ChannelTypeGuildPrivateThread, discordgo.ChannelTypeGuildNewsThread:
		return model.ChannelThread
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return model.ChannelVoice
	default:
		return model.ChannelOther
	}
}
