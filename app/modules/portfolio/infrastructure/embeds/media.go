package portfolioembeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// NoMediaText is sent as plain text when a previewed project has no files.
const NoMediaText = "📎 Нет медиафайлов"

func AddMediaMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите название проекта.\n" +
		"Пример: `/add-media Название проекта`\n\n" +
		"После этого вы сможете загрузить медиафайлы для проекта.")
}

func RemoveMediaMissingArgs() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, укажите название проекта.\nПример: `/remove-media Название проекта`")
}

func NoAttachments() *discordgo.MessageEmbed {
	return GenericError("Пожалуйста, прикрепите медиафайлы к сообщению.\n" +
		"Поддерживаемые форматы:\n" +
		"• Изображения (PNG, JPG, GIF)\n" +
		"• Видео (MP4, WebM)")
}

// MediaAddResult reports per-attachment outcomes. It is green when anything was added.
func MediaAddResult(projectName string, added, errs []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📎 Результат добавления медиафайлов",
		Description: fmt.Sprintf("Проект: **%s**", projectName),
		Color:       ColorRed,
	}
	if len(added) > 0 {
		embed.Color = ColorGreen
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "✅ Успешно добавлены",
			Value: strings.Join(added, "\n"),
		})
	}
	if len(errs) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "❌ Ошибки",
			Value: strings.Join(errs, "\n"),
		})
	}
	return embed
}

// MediaItem is one numbered row of the remove-media picker.
type MediaItem struct {
	Name string
	Type string
}

func MediaList(projectName string, items []MediaItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📎 Медиафайлы проекта",
		Description: fmt.Sprintf("Выберите номер файла для удаления из проекта **%s**:", projectName),
		Color:       ColorBlue,
	}
	for i, item := range items {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", i+1, item.Name),
			Value: "Тип: " + item.Type,
		})
	}
	return embed
}

func MediaRemoved(projectName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Файл удален",
		Description: fmt.Sprintf("Медиафайл успешно удален из проекта **%s**", projectName),
		Color:       ColorGreen,
	}
}

func NoMediaInProject(projectName string) *discordgo.MessageEmbed {
	return GenericError(fmt.Sprintf("У проекта **%s** нет медиафайлов.", projectName))
}

func MediaSelectionTimeout() *discordgo.MessageEmbed {
	return GenericError("Вы не выбрали файл для удаления.")
}

func InvalidMediaIndex() *discordgo.MessageEmbed {
	return GenericError("Неверный номер файла.")
}
