package tui

const recallSize = 64

// recall is the Up/Down ring of submitted input, oldest first. Battle input
// is kept as the action the engine resolved it to (play_card_2@0), so a
// recalled line repeats the exact play; anything else is kept as typed.
type recall struct {
	ring [recallSize]string
	head int // slot of the oldest entry
	n    int
	back int // entries back from the newest while browsing, 0 otherwise
}

// add appends s and stops browsing. A repeat of the newest entry is dropped.
func (r *recall) add(s string) {
	r.back = 0
	if s == "" || (r.n > 0 && r.at(r.n-1) == s) {
		return
	}
	if r.n < recallSize {
		r.ring[(r.head+r.n)%recallSize] = s
		r.n++
		return
	}
	r.ring[r.head] = s
	r.head = (r.head + 1) % recallSize
}

func (r *recall) at(i int) string { return r.ring[(r.head+i)%recallSize] }

// older steps one entry back, stopping at the oldest.
func (r *recall) older() (string, bool) {
	if r.n == 0 {
		return "", false
	}
	if r.back < r.n {
		r.back++
	}
	return r.at(r.n - r.back), true
}

// newer steps one entry forward. Past the newest it stops browsing and
// reports false so the prompt can be cleared.
func (r *recall) newer() (string, bool) {
	if r.back <= 1 {
		r.back = 0
		return "", false
	}
	r.back--
	return r.at(r.n - r.back), true
}

// recallText is what a battle step leaves in the ring.
func recallText(typed, action string, err error) string {
	if action != "" && err == nil {
		return action
	}
	return typed
}
