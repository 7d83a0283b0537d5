package portfolioembeds

import (
	"fmt"
	"time"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/bwmarrin/discordgo"
)

func AddProjectMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите все необходимые параметры.\n" +
		"Пример: `/add-project Название Категория Описание проекта`\n\n" +
		"• Название - короткое название проекта\n" +
		"• Категория - например: Веб-разработка, Дизайн, Фото\n" +
		"• Описание - подробное описание проекта")
}

func ProjectLimitReached() *discordgo.MessageEmbed {
	return GenericError(fmt.Sprintf("У вас уже есть максимальное количество проектов (%d).\n"+
		"Удалите один из существующих проектов, чтобы добавить новый.", portfoliotypes.MaxProjectsPerUser))
}

func ProjectExists(name string) *discordgo.MessageEmbed {
	return GenericError(fmt.Sprintf("Проект с названием **%s** уже существует.", name))
}

func ProjectNotFound(name string) *discordgo.MessageEmbed {
	return GenericError(fmt.Sprintf("Проект с названием **%s** не найден.", name))
}

// ProjectAdded confirms a new project; remaining is how many more may be added.
func ProjectAdded(name, category, description string, remaining int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Проект добавлен",
		Description: fmt.Sprintf("**%s** успешно добавлен в ваше портфолио", name),
		Color:       ColorGreen,
		Timestamp:   now().UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Категория", Value: category, Inline: true},
			{Name: "Описание", Value: description},
			{Name: "Осталось проектов", Value: fmt.Sprintf("Вы можете добавить еще %d проект(а)", remaining)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Используйте /add-media для добавления медиафайлов"},
	}
}

func RemoveProjectMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите название проекта.\nПример: `/remove-project Название проекта`")
}

func ProjectRemoved(name string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Проект удален",
		Description: fmt.Sprintf("Проект **%s** и все его медиафайлы удалены из портфолио", name),
		Color:       ColorGreen,
	}
}

// PortfolioPreview is the header sent before each project's details.
func PortfolioPreview(member portfoliotypes.Member, hasProjects bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "👁️ Портфолио " + member.Name(),
		Description: "Список проектов:",
		Color:       ColorBlue,
	}
	if member.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: member.AvatarURL}
	}
	if !hasProjects {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Проекты",
			Value: "У пользователя пока нет добавленных проектов.",
		})
	}
	return embed
}

func ProjectDetails(name, category, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📁 " + name,
		Description: fmt.Sprintf("**Категория:** %s\n**Описание:** %s", category, description),
		Color:       ColorBlue,
	}
}
