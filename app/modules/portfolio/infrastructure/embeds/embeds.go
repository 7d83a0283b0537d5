// Package portfolioembeds builds the Discord embeds the bot replies with.
package portfolioembeds

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	ColorGreen = 0x2ecc71
	ColorRed   = 0xe74c3c
	ColorBlue  = 0x3498db
)

const errorTitle = "❌ Ошибка"

// DefaultErrorMessage is shown when no more specific text applies.
const DefaultErrorMessage = "Произошла ошибка. Пожалуйста, попробуйте позже."

// now is replaced in tests.
var now = time.Now

// GenericError renders a red error embed with the given text.
func GenericError(message string) *discordgo.MessageEmbed {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &discordgo.MessageEmbed{
		Title:       errorTitle,
		Description: message,
		Color:       ColorRed,
	}
}

// ActionFailed is the reply for a storage fault while performing action.
func ActionFailed(action string) *discordgo.MessageEmbed {
	return GenericError("Произошла ошибка при " + action + ". Пожалуйста, попробуйте позже.")
}

// UnknownCommand is the reply for a prefix invocation no handler matches.
func UnknownCommand() *discordgo.MessageEmbed {
	return GenericError("Такой команды не существует.\nИспользуйте `/help` для просмотра списка доступных команд.")
}

// Start is the welcome embed.
func Start() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎨 Добро пожаловать в Portfol.io!",
		Description: "Создайте своё профессиональное портфолио прямо в Discord.",
		Color:       ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📝 Что вы можете сделать:",
				Value: "• Добавлять проекты и работы\n" +
					"• Загружать изображения и видео\n" +
					"• Прикреплять ссылки на внешние ресурсы\n" +
					"• Получить готовую веб-страницу портфолио",
			},
			{
				Name: "🎯 Начните с:",
				Value: "`/add-project` - добавить новый проект\n" +
					"`/help` - получить список всех команд\n" +
					"`/preview` - предпросмотр вашего портфолио",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Portfol.io — ваше портфолио в одном сообщении"},
	}
}
