package qotd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/qotd/src/commands"
	"github.com/stake-plus/qotd/src/discord"
)

const (
	colorHelp  = 0x1F8B4C
	colorPoll  = 0xE67E22
	colorInfo  = 0x206694
	emojiFirst = "🅰️"
	emojiOther = "🅱️"
)

var pollReactions = []string{emojiFirst, emojiOther}

// buildReplies renders the invoker-facing part of resp. Only the author may
// be pinged by a reply.
func buildReplies(in Inbound, resp commands.Response) []*discordgo.MessageSend {
	mention := ""
	if in.AuthorID != "" {
		mention = fmt.Sprintf("<@%s>", in.AuthorID)
	}

	var out []*discordgo.MessageSend
	switch {
	case len(resp.Entries) > 0:
		ids := make([]int64, len(resp.Entries))
		texts := make([]string, len(resp.Entries))
		for i, e := range resp.Entries {
			ids[i] = e.ID
			texts[i] = e.Text
		}
		for _, chunk := range discord.BuildListMessages(resp.Text, ids, texts, in.AuthorID) {
			out = append(out, &discordgo.MessageSend{Content: chunk})
		}
	case resp.Title != "" || resp.Detail != "":
		content := mention
		if resp.Text != "" {
			content = joinNonEmpty(mention, resp.Text)
		}
		color := colorInfo
		if resp.Status == commands.StatusOK && resp.Text == "" {
			color = colorHelp
		}
		out = append(out, &discordgo.MessageSend{
			Content: content,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       resp.Title,
				Description: truncate(resp.Detail, discord.MaxEmbedDescription),
				Color:       color,
			}},
		})
	case resp.Text != "":
		out = append(out, &discordgo.MessageSend{Content: joinNonEmpty(mention, resp.Text)})
	}

	for i, msg := range out {
		msg.AllowedMentions = &discordgo.MessageAllowedMentions{Users: userList(in.AuthorID)}
		if i == 0 && in.MessageID != "" {
			msg.Reference = &discordgo.MessageReference{
				MessageID: in.MessageID,
				ChannelID: in.ChannelID,
				GuildID:   in.GuildID,
			}
		}
	}
	return out
}

// buildDelivery renders content bound for the guild's delivery channel.
func buildDelivery(d *commands.Delivery) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{
		Content: d.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{
				discordgo.AllowedMentionTypeRoles,
				discordgo.AllowedMentionTypeEveryone,
			},
		},
	}
	if d.Poll != nil {
		msg.Embeds = []*discordgo.MessageEmbed{{
			Title:       d.Poll.Prompt,
			Description: fmt.Sprintf("%s - %s\n%s - %s", emojiFirst, d.Poll.OptionA, emojiOther, d.Poll.OptionB),
			Color:       colorPoll,
		}}
	}
	return msg
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

func userList(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
