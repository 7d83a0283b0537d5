package testutils

import (
	"time"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// DiscordID returns a random snowflake-shaped id.
func (g *TestDataGenerator) DiscordID() portfoliotypes.DiscordID {
	return portfoliotypes.DiscordID(g.faker.Numerify("1#################"))
}

// Project returns a project name, category and description.
func (g *TestDataGenerator) Project() (name, category, description string) {
	name = g.faker.AppName()
	category = g.faker.RandomString([]string{"Веб-разработка", "Дизайн", "Фото", "Видео"})
	description = g.faker.Sentence(g.faker.Number(3, 8))
	return name, category, description
}

// Bio returns a short profile description.
func (g *TestDataGenerator) Bio() string {
	return g.faker.Sentence(g.faker.Number(4, 12))
}

// Links returns count link inputs with distinct URLs.
func (g *TestDataGenerator) Links(count int) []portfolioservice.LinkInput {
	links := make([]portfolioservice.LinkInput, count)
	for i := range links {
		links[i] = portfolioservice.LinkInput{
			Title: g.faker.Word(),
			URL:   "https://" + g.faker.DomainName() + "/" + g.faker.Username() + g.faker.Numerify("###"),
		}
	}
	return links
}
