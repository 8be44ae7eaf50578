// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

// Package cache provides the in-memory data structures shared by the
// pipeline: a multi-keyword matcher and a TTL cache.
package cache

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// AhoCorasick finds all occurrences of many keywords in one pass over a
// text, in O(n + m + z) time. Matching is case-insensitive.
//
// With WholeWords enabled a match only counts when it is not embedded in a
// longer word, so "ring" matches "gold ring" but not "earring" or "string".
// A trailing plural "s" or "es" is tolerated ("boot" matches "ankle boots").
//
//	ac := NewAhoCorasick()
//	ac.WholeWords = true
//	ac.AddPatterns([]string{"dress", "gown"}, "Dresses")
//	ac.Build()
//	matches := ac.Search("Silk Slip Dresses")
type AhoCorasick struct {
	// WholeWords restricts matches to word boundaries.
	WholeWords bool

	mu       sync.RWMutex
	root     *acNode
	patterns []Pattern
	built    bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // pattern indices ending here
}

// Pattern is a keyword and the data returned when it matches.
type Pattern struct {
	Text string
	Data any
}

// Match is one keyword occurrence. Position and End are byte offsets into
// the searched text.
type Match struct {
	Pattern  string
	Data     any
	Position int
	End      int
	Index    int // insertion order of the pattern
}

// NewAhoCorasick returns an empty automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode()}
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// AddPattern registers a keyword. Build must be called afterwards.
func (ac *AhoCorasick) AddPattern(pattern string, data any) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return
	}

	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.built = false
	ac.patterns = append(ac.patterns, Pattern{Text: pattern, Data: data})
}

// AddPatterns registers several keywords sharing the same data.
func (ac *AhoCorasick) AddPatterns(patterns []string, data any) {
	for _, p := range patterns {
		ac.AddPattern(p, data)
	}
}

// Build constructs the trie and failure links.
func (ac *AhoCorasick) Build() {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if ac.built {
		return
	}

	ac.root = newACNode()
	for i, p := range ac.patterns {
		node := ac.root
		for _, ch := range p.Text {
			next := node.children[ch]
			if next == nil {
				next = newACNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}

	ac.built = true
}

// Search returns every match in text, ordered by end offset.
func (ac *AhoCorasick) Search(text string) []Match {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if !ac.built || len(ac.patterns) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var matches []Match
	node := ac.root
	for i, ch := range lower {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = ac.root
			continue
		}
		node = node.children[ch]

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			p := ac.patterns[idx]
			m := Match{
				Pattern:  p.Text,
				Data:     p.Data,
				Position: end - len(p.Text),
				End:      end,
				Index:    idx,
			}
			if ac.WholeWords {
				var ok bool
				if m.End, ok = wordBounded(lower, m.Position, end); !ok {
					continue
				}
			}
			matches = append(matches, m)
		}
	}
	return matches
}

// SearchFirst returns the earliest-ending match.
func (ac *AhoCorasick) SearchFirst(text string) (Match, bool) {
	matches := ac.Search(text)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// wordBounded checks that text[start:end] is not part of a longer word,
// allowing an "s" or "es" plural suffix. It returns the end offset
// including any suffix.
func wordBounded(text string, start, end int) (int, bool) {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return end, false
		}
	}

	for _, suffix := range []string{"", "s", "es"} {
		e := end + len(suffix)
		if !strings.HasPrefix(text[end:], suffix) {
			continue
		}
		if e == len(text) {
			return e, true
		}
		r, _ := utf8.DecodeRuneInString(text[e:])
		if !isWordRune(r) {
			return e, true
		}
	}
	return end, false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
