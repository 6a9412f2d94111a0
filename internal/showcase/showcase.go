// Package showcase renders the small behavioural patterns that sit beside
// the core: strategy swap, subscriber fan-out, state toggling, a handler
// chain, iteration and a hook-driven recipe.
package showcase

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// Section is one titled block of output.
type Section struct {
	Title string
	Lines []string
}

// Sections returns every pattern in display order.
func Sections() []Section {
	return []Section{
		{"strategy", Strategy()},
		{"observer", Observer()},
		{"state", State(3)},
		{"chain", Chain(2, 5, 14)},
		{"iterator", Iterate("A", "B", "C")},
		{"template", Template()},
	}
}

// Write renders every section to w.
func Write(w io.Writer) error {
	var b strings.Builder
	for _, s := range Sections() {
		fmt.Fprintf(&b, "== %s\n", s.Title)
		for _, l := range s.Lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SortFunc is an interchangeable sorting strategy.
type SortFunc func([]int) []int

// BubbleSort sorts a copy of xs by repeated adjacent swaps.
func BubbleSort(xs []int) []int {
	out := slices.Clone(xs)
	for i := len(out); i > 1; i-- {
		for j := 1; j < i; j++ {
			if out[j-1] > out[j] {
				out[j-1], out[j] = out[j], out[j-1]
			}
		}
	}
	return out
}

// SelectionSort sorts a copy of xs by selecting the minimum of the tail.
func SelectionSort(xs []int) []int {
	out := slices.Clone(xs)
	for i := range out {
		lo := i
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[lo] {
				lo = j
			}
		}
		out[i], out[lo] = out[lo], out[i]
	}
	return out
}

// Strategy runs the same input through both sorting strategies.
func Strategy() []string {
	input := []int{5, 2, 9, 1}
	strategies := []struct {
		name string
		sort SortFunc
	}{
		{"bubble sort", BubbleSort},
		{"selection sort", SelectionSort},
	}

	var lines []string
	for _, s := range strategies {
		lines = append(lines, fmt.Sprintf("%s: %v", s.name, s.sort(input)))
	}
	return lines
}

// Subject fans a message out to its subscribers in subscription order.
type Subject struct {
	names []string
	subs  map[string]func(string)
}

// Subscribe adds or replaces the subscriber called name.
func (s *Subject) Subscribe(name string, fn func(msg string)) {
	if s.subs == nil {
		s.subs = make(map[string]func(string))
	}
	if _, ok := s.subs[name]; !ok {
		s.names = append(s.names, name)
	}
	s.subs[name] = fn
}

// Unsubscribe removes name. Unknown names are ignored.
func (s *Subject) Unsubscribe(name string) {
	if _, ok := s.subs[name]; !ok {
		return
	}
	delete(s.subs, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
}

// Notify calls every subscriber with msg.
func (s *Subject) Notify(msg string) {
	for _, n := range s.names {
		s.subs[n](msg)
	}
}

// Observer notifies two subscribers, drops one, and notifies again.
func Observer() []string {
	var lines []string
	var subject Subject
	for _, name := range []string{"observer1", "observer2"} {
		subject.Subscribe(name, func(msg string) {
			lines = append(lines, name+" got "+msg)
		})
	}
	subject.Notify("event 1")
	subject.Unsubscribe("observer1")
	subject.Notify("event 2")
	return lines
}

// stateFn handles one action and returns the next state.
type stateFn func(out *[]string) stateFn

func standing(out *[]string) stateFn {
	*out = append(*out, "player is standing")
	return jumping
}

func jumping(out *[]string) stateFn {
	*out = append(*out, "player is jumping")
	return standing
}

// State performs n player actions starting from standing.
func State(n int) []string {
	var lines []string
	state := stateFn(standing)
	for range n {
		state = state(&lines)
	}
	return lines
}

// Handler answers a request or passes it on.
type Handler struct {
	Name  string
	Limit int // handles requests below Limit; zero handles everything
	Next  *Handler
}

// Handle returns the name of the handler that took the request, or "" when
// nobody did.
func (h *Handler) Handle(request int) string {
	for cur := h; cur != nil; cur = cur.Next {
		if cur.Limit == 0 || request < cur.Limit {
			return cur.Name
		}
	}
	return ""
}

// NewChain builds the three-handler chain with thresholds 3 and 10.
func NewChain() *Handler {
	return &Handler{Name: "handler 1", Limit: 3,
		Next: &Handler{Name: "handler 2", Limit: 10,
			Next: &Handler{Name: "handler 3"}}}
}

// Chain sends each request down the chain.
func Chain(requests ...int) []string {
	chain := NewChain()
	lines := make([]string, 0, len(requests))
	for _, r := range requests {
		lines = append(lines, fmt.Sprintf("request %d handled by %s", r, chain.Handle(r)))
	}
	return lines
}

// Items yields each item in order.
func Items(items ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	}
}

// Iterate lists items through Items.
func Iterate(items ...string) []string {
	var lines []string
	for it := range Items(items...) {
		lines = append(lines, "item: "+it)
	}
	return lines
}

// Recipe holds the variable steps of a beverage. Nil hooks are skipped,
// except WantsCondiments, which defaults to true.
type Recipe struct {
	Name            string
	Brew            func() string
	AddCondiments   func() string
	WantsCondiments func() bool
}

// Prepare runs the fixed preparation order: boil, brew, pour, condiments.
func Prepare(r Recipe) []string {
	steps := []string{"boiling water"}
	if r.Brew != nil {
		steps = append(steps, r.Brew())
	}
	steps = append(steps, "pouring into cup")
	wants := r.WantsCondiments == nil || r.WantsCondiments()
	if wants && r.AddCondiments != nil {
		steps = append(steps, r.AddCondiments())
	}

	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = r.Name + ": " + s
	}
	return lines
}

// Template prepares tea and black coffee.
func Template() []string {
	tea := Recipe{
		Name:          "tea",
		Brew:          func() string { return "steeping the tea" },
		AddCondiments: func() string { return "adding lemon" },
	}
	coffee := Recipe{
		Name:            "coffee",
		Brew:            func() string { return "dripping coffee through filter" },
		AddCondiments:   func() string { return "adding sugar and milk" },
		WantsCondiments: func() bool { return false },
	}
	return append(Prepare(tea), Prepare(coffee)...)
}
