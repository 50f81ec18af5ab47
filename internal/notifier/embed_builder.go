package notifier

import (
	"time"

	"github.com/aleister1102/outboundwatch/internal/models"
)

// DiscordEmbedBuilder helps in constructing models.DiscordEmbed objects.
type DiscordEmbedBuilder struct {
	embed models.DiscordEmbed
}

// NewDiscordEmbedBuilder creates a new instance of DiscordEmbedBuilder.
func NewDiscordEmbedBuilder() *DiscordEmbedBuilder {
	return &DiscordEmbedBuilder{}
}

func (b *DiscordEmbedBuilder) WithTitle(title string) *DiscordEmbedBuilder {
	b.embed.Title = title
	return b
}

// WithDescription sets the description, truncated to the embed limit.
func (b *DiscordEmbedBuilder) WithDescription(description string) *DiscordEmbedBuilder {
	if r := []rune(description); len(r) > MaxEmbedDescription {
		description = string(r[:MaxEmbedDescription-3]) + "..."
	}
	b.embed.Description = description
	return b
}

func (b *DiscordEmbedBuilder) WithTimestamp(timestamp time.Time) *DiscordEmbedBuilder {
	b.embed.Timestamp = timestamp.Format(time.RFC3339)
	return b
}

func (b *DiscordEmbedBuilder) WithColor(color int) *DiscordEmbedBuilder {
	b.embed.Color = color
	return b
}

func (b *DiscordEmbedBuilder) WithFooter(text string) *DiscordEmbedBuilder {
	b.embed.Footer = &models.DiscordEmbedFooter{Text: text}
	return b
}

// AddField appends a field; empty values are skipped.
func (b *DiscordEmbedBuilder) AddField(name, value string, inline bool) *DiscordEmbedBuilder {
	if value == "" {
		return b
	}
	b.embed.Fields = append(b.embed.Fields, models.DiscordEmbedField{Name: name, Value: value, Inline: inline})
	return b
}

func (b *DiscordEmbedBuilder) Build() models.DiscordEmbed {
	return b.embed
}

// severityColor picks the embed color for a severity.
func severityColor(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return CriticalEmbedColor
	case models.SeverityWarning:
		return WarningEmbedColor
	default:
		return InfoEmbedColor
	}
}
