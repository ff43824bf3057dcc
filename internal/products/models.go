package products

// HistoryWindow is how many price samples a product keeps.
const HistoryWindow = 7

type Product struct {
	ID             int64          `json:"id"`
	URL            string         `json:"url"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	CurrentPrice   int            `json:"current_price"`
	PriceHistory   []PriceHistory `json:"price_history"`
	Reviews        int            `json:"reviews"`
	Rating         float64        `json:"rating"`
	TotalPurchases int            `json:"total_purchases"`
	LastChecked    string         `json:"last_checked"`
	PriceChecked   bool           `json:"price_checked"`
}

type PriceHistory struct {
	Date  string `json:"date"`
	Price int    `json:"price"`
}

// State is everything the tracker view owns. Reducers return a new State
// and never modify the slices of the one they were given.
type State struct {
	Products []Product
	URL      string
	Error    string
}
