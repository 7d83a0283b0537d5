package portfolioembeds

import (
	"fmt"
	"strings"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/bwmarrin/discordgo"
)

// LinkView is a profile link as shown to users.
type LinkView struct {
	Title string
	URL   string
}

func formatLinks(links []LinkView) string {
	lines := make([]string, 0, len(links))
	for _, l := range links {
		title := l.Title
		if title == "" {
			title = "Ссылка"
		}
		lines = append(lines, fmt.Sprintf("• [%s](%s)", title, l.URL))
	}
	return strings.Join(lines, "\n")
}

// ProfileView renders a user's bio and links. ownProfile controls the preview hint.
func ProfileView(member portfoliotypes.Member, bio string, links []LinkView, ownProfile bool) *discordgo.MessageEmbed {
	if bio == "" {
		bio = "Нет описания"
	}
	embed := &discordgo.MessageEmbed{
		Title:       "👤 Профиль " + member.Name(),
		Description: bio,
		Color:       ColorBlue,
	}
	if member.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: member.AvatarURL}
	}
	if len(links) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🔗 Ссылки",
			Value: formatLinks(links),
		})
	}

	previewCmd := "preview"
	if !ownProfile {
		previewCmd = "preview @" + member.Username
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "📁 Портфолио",
		Value: fmt.Sprintf("Используйте `/%s` для просмотра портфолио", previewCmd),
	})
	return embed
}

func ProfileNotFound(id portfoliotypes.DiscordID) *discordgo.MessageEmbed {
	return GenericError(fmt.Sprintf("Профиль пользователя %s не найден.", id.Mention()))
}

func SetProfileMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите описание профиля.\nПример: `/set-profile Я веб-разработчик с 5-летним опытом...`")
}

func ProfileUpdated(bio string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Профиль обновлен",
		Description: "Описание вашего профиля успешно обновлено",
		Color:       ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Новое описание", Value: bio},
		},
	}
}

func SetLinksMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите ссылки в формате:\n" +
		"`/set-links Название: URL, Название: URL`\n\n" +
		"Пример:\n" +
		"`/set-links GitHub: https://github.com/username, LinkedIn: https://linkedin.com/in/username`")
}

// LinksUpdated lists the stored links ("• title: url") and any rejected entries.
func LinksUpdated(added, errs []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "✅ Ссылки обновлены",
		Description: "Результат обновления ссылок:",
		Color:       ColorGreen,
	}
	if len(added) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Успешно добавлены",
			Value: strings.Join(added, "\n"),
		})
	}
	if len(errs) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Ошибки",
			Value: strings.Join(errs, "\n"),
		})
	}
	return embed
}
