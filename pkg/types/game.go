package types

import "sort"

// Game owns the quotes for one fixture, grouped by market type.
// A Game lives for the duration of one analysis batch only.
type Game struct {
	Sport    string
	HomeTeam string
	AwayTeam string
	Markets  map[MarketType][]*Quote
}

// Key returns the canonical game key.
func (g *Game) Key() string {
	return GameKey(g.HomeTeam, g.AwayTeam)
}

// AddQuote appends a quote to its market's collection.
func (g *Game) AddQuote(q *Quote) {
	g.Markets[q.Market] = append(g.Markets[q.Market], q)
}

// QuotesByOutcome groups one market's quotes by outcome label.
// Absent markets and outcomes simply yield an empty map: no data, not
// an error.
func (g *Game) QuotesByOutcome(market MarketType) map[string][]*Quote {
	grouped := make(map[string][]*Quote)
	for _, q := range g.Markets[market] {
		grouped[q.Outcome] = append(grouped[q.Outcome], q)
	}

	return grouped
}

// Book holds all games of one batch, keyed sport -> game key.
type Book struct {
	Sports map[string]map[string]*Game
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{Sports: make(map[string]map[string]*Game)}
}

// Add routes a quote into its game, creating the game on first sight.
func (b *Book) Add(q *Quote) {
	games, ok := b.Sports[q.Sport]
	if !ok {
		games = make(map[string]*Game)
		b.Sports[q.Sport] = games
	}

	key := q.GameKey()
	game, ok := games[key]
	if !ok {
		game = &Game{
			Sport:    q.Sport,
			HomeTeam: q.HomeTeam,
			AwayTeam: q.AwayTeam,
			Markets:  make(map[MarketType][]*Quote),
		}
		games[key] = game
	}

	game.AddQuote(q)
}

// Games returns all games ordered by sport then game key, so that
// iteration order is deterministic across runs.
func (b *Book) Games() []*Game {
	sports := make([]string, 0, len(b.Sports))
	for sport := range b.Sports {
		sports = append(sports, sport)
	}
	sort.Strings(sports)

	var games []*Game
	for _, sport := range sports {
		keys := make([]string, 0, len(b.Sports[sport]))
		for key := range b.Sports[sport] {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			games = append(games, b.Sports[sport][key])
		}
	}

	return games
}

// Len returns the total number of games in the book.
func (b *Book) Len() int {
	n := 0
	for _, games := range b.Sports {
		n += len(games)
	}

	return n
}
