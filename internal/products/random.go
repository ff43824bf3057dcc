package products

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// RandSource is the subset of *rand.Rand the simulation needs.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// Env carries the side effects the reducers depend on.
type Env struct {
	Rand RandSource
	Now  func() time.Time
}

// NewEnv returns an Env backed by a time-seeded generator and the wall clock.
func NewEnv() Env {
	return Env{
		Rand: &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
		Now:  time.Now,
	}
}

// *rand.Rand is not safe for concurrent use; handlers and the scheduler share one.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

const (
	minBasePrice   = 10000
	basePriceSpan  = 50000
	priceDeltaSpan = 2000

	dateLayout    = "2006-01-02"
	checkedLayout = "2006-01-02 15:04:05"
)

func basePrice(r RandSource) int {
	return minBasePrice + r.Intn(basePriceSpan)
}

// priceDelta is uniform over [-1000, 1000).
func priceDelta(r RandSource) int {
	return r.Intn(priceDeltaSpan) - priceDeltaSpan/2
}

func reviewCount(r RandSource) int {
	return r.Intn(1000) + 100
}

func purchaseCount(r RandSource) int {
	return r.Intn(5000) + 500
}

// rating is in [3.5, 5.0] rounded to one decimal.
func rating(r RandSource) float64 {
	return math.Round((3.5+r.Float64()*1.5)*10) / 10
}

// simulateHistory returns HistoryWindow daily samples ending today, oldest first.
func simulateHistory(env Env, base int) []PriceHistory {
	now := env.Now().UTC()
	history := make([]PriceHistory, 0, HistoryWindow)
	for i := HistoryWindow - 1; i >= 0; i-- {
		history = append(history, PriceHistory{
			Date:  now.AddDate(0, 0, -i).Format(dateLayout),
			Price: base + priceDelta(env.Rand),
		})
	}
	return history
}
