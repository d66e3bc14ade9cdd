// Package format собирает тексты сообщений в разметке Telegram MarkdownV2.
package format

import (
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-news-bot/internal/domain/models"
)

// Внутри (...) ссылки Telegram требует экранировать только ')' и '\'.
var linkEscaper = strings.NewReplacer(`\`, `\\`, `)`, `\)`)

// Escape экранирует текст для MarkdownV2. EscapeText не трогает '\', поэтому
// обратный слэш экранируется до остальных символов.
func Escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, strings.ReplaceAll(text, `\`, `\\`))
}

func EscapeLink(link string) string {
	return linkEscaper.Replace(link)
}

// Headlines возвращает по строке на заголовок: *заголовок* (домен-ссылка).
func Headlines(headlines []models.Headline) string {
	lines := make([]string, 0, len(headlines))

	for _, h := range headlines {
		lines = append(lines, headlineLine(h))
	}

	return strings.Join(lines, "\n")
}

func headlineLine(h models.Headline) string {
	var b strings.Builder

	b.WriteString("*")
	b.WriteString(Escape(h.Title))
	b.WriteString("* \\([")
	b.WriteString(Escape(domainOf(h.Link)))
	b.WriteString("](")
	b.WriteString(EscapeLink(h.Link))
	b.WriteString(")\\)")

	return b.String()
}

func domainOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}

	return u.Hostname()
}
