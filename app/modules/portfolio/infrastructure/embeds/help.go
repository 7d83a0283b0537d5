package portfolioembeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandInfo describes one command in the help catalog.
type CommandInfo struct {
	Name        string
	Description string
	Example     string
}

// HelpCategory groups commands under a heading.
type HelpCategory struct {
	Title    string
	Commands []CommandInfo
}

// helpCatalog is read-only; categories render in this order.
var helpCatalog = []HelpCategory{
	{
		Title: "👤 Профиль",
		Commands: []CommandInfo{
			{"set-profile", "установить описание профиля", "Креативный дизайнер с 5-летним опытом"},
			{"set-links", "установить внешние ссылки", "GitHub: github.com/username, Behance: behance.net/username"},
			{"profile", "просмотреть профиль", "@пользователь"},
		},
	},
	{
		Title: "📁 Проекты",
		Commands: []CommandInfo{
			{"add-project", "создать проект", "Веб-сайт Веб-разработка Современный сайт для компании"},
			{"remove-project", "удалить проект", "Веб-сайт"},
			{"preview", "просмотреть портфолио", "@пользователь"},
		},
	},
	{
		Title: "📎 Медиафайлы",
		Commands: []CommandInfo{
			{"add-media", "добавить медиафайлы", ""},
			{"remove-media", "удалить медиафайлы", ""},
		},
	},
}

// HelpCatalog returns a copy of the command catalog.
func HelpCatalog() []HelpCategory {
	out := make([]HelpCategory, len(helpCatalog))
	for i, c := range helpCatalog {
		out[i] = HelpCategory{Title: c.Title, Commands: append([]CommandInfo(nil), c.Commands...)}
	}
	return out
}

func formatCommands(cmds []CommandInfo) string {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		usage := strings.TrimSpace(c.Name + " " + c.Example)
		lines = append(lines, fmt.Sprintf("• `/%s` - %s", usage, c.Description))
	}
	return strings.Join(lines, "\n")
}

func Help() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📚 Справка по командам",
		Description: "Список доступных команд для управления портфолио:",
		Color:       ColorBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Используйте /help для просмотра этого сообщения"},
	}
	for _, category := range helpCatalog {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  category.Title,
			Value: formatCommands(category.Commands),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Поддерживаемые форматы",
		Value: "• Изображения (PNG, JPG, GIF)\n• Видео (MP4, WebM)",
	})
	return embed
}
