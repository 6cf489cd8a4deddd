package battle

import (
	"github.com/nathoo/spirecore/engine/assert"
	"github.com/nathoo/spirecore/engine/cards"
)

// Pile is a bounded, ordered card list. The last card is the top.
type Pile struct {
	cards [cards.MaxDeckSize]cards.Card
	n     int
}

func (p *Pile) Len() int { return p.n }

func (p *Pile) Empty() bool { return p.n == 0 }

// At returns the card at index i from the bottom.
func (p *Pile) At(i int) cards.Card {
	assert.That(i >= 0 && i < p.n, "pile index out of range")
	return p.cards[i]
}

// Push puts c on top.
func (p *Pile) Push(c cards.Card) {
	assert.That(p.n < cards.MaxDeckSize, "pile overflow")
	p.cards[p.n] = c
	p.n++
}

// Pop removes and returns the top card.
func (p *Pile) Pop() cards.Card {
	assert.That(p.n > 0, "pop from empty pile")
	p.n--
	c := p.cards[p.n]
	p.cards[p.n] = cards.Card{}
	return c
}

// RemoveAt removes the card at i, keeping the order of the rest.
func (p *Pile) RemoveAt(i int) cards.Card {
	assert.That(i >= 0 && i < p.n, "pile index out of range")
	c := p.cards[i]
	copy(p.cards[i:p.n-1], p.cards[i+1:p.n])
	p.n--
	p.cards[p.n] = cards.Card{}
	return c
}

// Cards returns a copy of the pile from bottom to top.
func (p *Pile) Cards() []cards.Card {
	out := make([]cards.Card, p.n)
	copy(out, p.cards[:p.n])
	return out
}

// Count returns how many cards satisfy fn.
func (p *Pile) Count(fn func(cards.Card) bool) int {
	n := 0
	for i := 0; i < p.n; i++ {
		if fn(p.cards[i]) {
			n++
		}
	}
	return n
}

// slice exposes the live backing storage for in-place shuffles.
func (p *Pile) slice() []cards.Card { return p.cards[:p.n] }

// moveAll appends every card of src onto p in order and empties src.
func (p *Pile) moveAll(src *Pile) {
	for i := 0; i < src.n; i++ {
		p.Push(src.cards[i])
		src.cards[i] = cards.Card{}
	}
	src.n = 0
}
