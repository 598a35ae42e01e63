// Package pager accumulates the problem catalogue page by page, dropping
// entries it has already seen and deciding when the next page is due.
package pager

import (
	"strings"

	"leetui/internal/leetcode"
)

const (
	PageSize  = 50
	Threshold = 25
)

// Request is a page fetch the pager wants issued.
type Request struct {
	Token  uint64
	Skip   int
	Limit  int
	Search string
}

type Pager struct {
	items    []leetcode.Problem
	known    map[string]struct{}
	selected int
	hasMore  bool
	inFlight bool
	search   string
	gen      uint64
	total    int
}

func New() *Pager {
	return &Pager{
		known:    map[string]struct{}{},
		selected: -1,
		hasMore:  true,
		gen:      1,
	}
}

// Request marks a fetch in flight and returns it. The skip offset is the
// number of accumulated items.
func (p *Pager) Request() Request {
	p.inFlight = true
	return Request{
		Token:  p.gen,
		Skip:   len(p.items),
		Limit:  PageSize,
		Search: p.search,
	}
}

// Apply merges a batch. It reports false when the batch belongs to a
// superseded search and was dropped.
func (p *Pager) Apply(token uint64, batch []leetcode.Problem, total int) bool {
	if token != p.gen {
		return false
	}
	for _, item := range batch {
		if _, ok := p.known[item.ID]; ok {
			continue
		}
		p.known[item.ID] = struct{}{}
		p.items = append(p.items, item)
	}
	p.hasMore = len(batch) >= PageSize
	p.inFlight = false
	p.total = total
	if p.selected < 0 && len(p.items) > 0 {
		p.selected = 0
	}
	return true
}

// Fail clears the in-flight flag after a failed fetch of the current
// generation so scrolling can retry.
func (p *Pager) Fail(token uint64) {
	if token == p.gen {
		p.inFlight = false
	}
}

// Move shifts the selection by delta, clamped to the loaded items, and
// reports whether the next page should be requested.
func (p *Pager) Move(delta int) bool {
	if len(p.items) == 0 {
		return false
	}
	p.selected = clamp(p.selected+delta, 0, len(p.items)-1)
	return p.PrefetchDue()
}

// Top and Bottom jump to the ends of the loaded sequence.
func (p *Pager) Top() bool    { return p.Move(-len(p.items)) }
func (p *Pager) Bottom() bool { return p.Move(len(p.items)) }

func (p *Pager) PrefetchDue() bool {
	return p.selected+Threshold >= len(p.items) && !p.inFlight && p.hasMore
}

// Reset starts a new search. Results of earlier requests no longer apply.
func (p *Pager) Reset(search string) {
	p.items = nil
	p.known = map[string]struct{}{}
	p.selected = -1
	p.hasMore = true
	p.inFlight = false
	p.total = 0
	p.search = strings.TrimSpace(search)
	p.gen++
}

func (p *Pager) Items() []leetcode.Problem { return p.items }
func (p *Pager) Len() int                  { return len(p.items) }
func (p *Pager) Known() int                { return len(p.known) }
func (p *Pager) HasMore() bool             { return p.hasMore }
func (p *Pager) InFlight() bool            { return p.inFlight }
func (p *Pager) Search() string            { return p.search }
func (p *Pager) Total() int                { return p.total }
func (p *Pager) Generation() uint64        { return p.gen }

// Index is the selected position, or -1 when nothing is loaded.
func (p *Pager) Index() int { return p.selected }

func (p *Pager) Selected() (leetcode.Problem, bool) {
	if p.selected < 0 || p.selected >= len(p.items) {
		return leetcode.Problem{}, false
	}
	return p.items[p.selected], true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
