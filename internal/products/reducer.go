package products

import "fmt"

const (
	MsgEmptyURL   = "Please enter a URL."
	MsgInvalidURL = "Please enter a valid Flipkart product URL."
)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AddProduct validates url and prepends a new simulated product. On failure
// the product list is left alone and Error holds the reason.
func AddProduct(s State, url string, env Env) State {
	s.URL = url
	if url == "" {
		s.Error = MsgEmptyURL
		return s
	}
	if !IsValidURL(url) {
		s.Error = MsgInvalidURL
		return s
	}

	title := ExtractTitle(url)
	base := basePrice(env.Rand)
	now := env.Now()

	p := Product{
		ID:             nextID(s.Products, now.UnixMilli()),
		URL:            url,
		Title:          title,
		Description:    fmt.Sprintf("Product from Flipkart - %s", title),
		CurrentPrice:   base,
		PriceHistory:   simulateHistory(env, base),
		Reviews:        reviewCount(env.Rand),
		Rating:         rating(env.Rand),
		TotalPurchases: purchaseCount(env.Rand),
		LastChecked:    now.Format(checkedLayout),
	}

	list := make([]Product, 0, len(s.Products)+1)
	list = append(list, p)
	list = append(list, s.Products...)

	return State{Products: list}
}

// CheckPrice applies a random price move to the product with the given id.
// The second result is false, and s is returned untouched, when no such
// product exists.
func CheckPrice(s State, id int64, env Env) (State, bool) {
	idx := -1
	for i := range s.Products {
		if s.Products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}

	now := env.Now()
	p := s.Products[idx]
	p.CurrentPrice += priceDelta(env.Rand)
	p.PriceHistory = pushSample(p.PriceHistory, PriceHistory{
		Date:  now.UTC().Format(dateLayout),
		Price: p.CurrentPrice,
	})
	p.LastChecked = now.Format(checkedLayout)
	p.PriceChecked = true

	list := make([]Product, len(s.Products))
	copy(list, s.Products)
	list[idx] = p
	s.Products = list
	return s, true
}

// pushSample appends sample to a copy of history and drops the oldest
// entries past HistoryWindow.
func pushSample(history []PriceHistory, sample PriceHistory) []PriceHistory {
	out := make([]PriceHistory, 0, HistoryWindow+1)
	out = append(out, history...)
	out = append(out, sample)
	if n := len(out) - HistoryWindow; n > 0 {
		out = out[n:]
	}
	return out
}

// nextID is the creation time in milliseconds, moved past every existing id
// when two products are added within the same millisecond.
func nextID(list []Product, millis int64) int64 {
	for _, p := range list {
		if p.ID >= millis {
			millis = p.ID + 1
		}
	}
	return millis
}
