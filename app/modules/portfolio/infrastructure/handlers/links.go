package portfoliohandlers

import (
	"strings"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
)

// ParseLinks parses "title: url, title: url". Each entry splits on its first
// colon; URLs without a scheme get https://. Entries without a colon or with an
// empty side become error lines. Blank entries are ignored.
func ParseLinks(raw string) ([]portfolioservice.LinkInput, []string) {
	var (
		links  []portfolioservice.LinkInput
		failed []string
	)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		title, url, ok := strings.Cut(pair, ":")
		title, url = strings.TrimSpace(title), strings.TrimSpace(url)
		if !ok || title == "" || url == "" {
			failed = append(failed, "• Неверный формат: "+pair)
			continue
		}

		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = "https://" + url
		}
		links = append(links, portfolioservice.LinkInput{URL: url, Title: title})
	}
	return links, failed
}
