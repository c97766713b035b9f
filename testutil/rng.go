package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/notesync/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Note returns a random note on one of the first pages pages. Coordinates
// are whole points on a US letter page so they survive any JSON codec
// unchanged.
func (r *RNG) Note(pages int) model.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.noteLocked(pages)
}

func (r *RNG) noteLocked(pages int) model.Note {
	return model.Note{
		PageIndex: r.rand.Intn(pages),
		X:         float64(r.rand.Intn(612)),
		Y:         float64(r.rand.Intn(792)),
		Width:     float64(1 + r.rand.Intn(200)),
		Height:    float64(1 + r.rand.Intn(100)),
		Text:      fmt.Sprintf("note-%d", r.rand.Intn(1000)),
	}
}

// Notes returns num random notes spread over pages pages.
func (r *RNG) Notes(num, pages int) []model.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := make([]model.Note, num)
	for i := range notes {
		notes[i] = r.noteLocked(pages)
	}
	return notes
}

// Pages groups notes by page index into a dense page slice sized to the
// highest page index seen. Notes within a page keep their input order.
func Pages(notes []model.Note) [][]model.Note {
	last := -1
	for _, n := range notes {
		last = max(last, n.PageIndex)
	}

	pages := make([][]model.Note, last+1)
	for i := range pages {
		pages[i] = []model.Note{}
	}
	for _, n := range notes {
		pages[n.PageIndex] = append(pages[n.PageIndex], n)
	}
	return pages
}
