// Package briefing assembles the daily briefing dataset from stored news,
// community posts and the latest exchange and interest rates.
package briefing

// Category tags a briefing item by source
type Category string

const (
	CategoryNews      Category = "NEWS"
	CategoryCommunity Category = "COMMUNITY"
	CategoryExchange  Category = "EXCHANGE"
	CategoryInterest  Category = "INTEREST"
)

// Item is one briefing entry. The set of implementations is closed.
type Item interface {
	Category() Category
	Label() string
	Value() string
	isItem()
}

// NewsItem is a stored article
type NewsItem struct {
	Title       string
	Description string
}

func (NewsItem) Category() Category { return CategoryNews }
func (n NewsItem) Label() string    { return n.Title }
func (n NewsItem) Value() string    { return n.Description }
func (NewsItem) isItem()            {}

// CommunityItem is a community post with a short excerpt of its body
type CommunityItem struct {
	Title   string
	Excerpt string
}

func (CommunityItem) Category() Category { return CategoryCommunity }
func (c CommunityItem) Label() string    { return c.Title }
func (c CommunityItem) Value() string    { return c.Excerpt }
func (CommunityItem) isItem()            {}

// ExchangeItem is the latest won rate of one currency
type ExchangeItem struct {
	Currency string
	Rate     string
}

func (ExchangeItem) Category() Category { return CategoryExchange }
func (e ExchangeItem) Label() string    { return e.Currency }
func (e ExchangeItem) Value() string    { return e.Rate }
func (ExchangeItem) isItem()            {}

// InterestItem is the latest value of one market interest rate
type InterestItem struct {
	Name string
	Rate string
}

func (InterestItem) Category() Category { return CategoryInterest }
func (i InterestItem) Label() string    { return i.Name }
func (i InterestItem) Value() string    { return i.Rate }
func (InterestItem) isItem()            {}

// Triple is the flattened form of an item
type Triple struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Value    string   `json:"value"`
}
