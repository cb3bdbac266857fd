// Package testutil holds question fixtures shared by package tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/dq/internal/question"
)

// Partition builds one question per text, all keyed to (user, week).
func Partition(user string, week uint8, texts ...string) []question.Question {
	qs := make([]question.Question, len(texts))
	for i, text := range texts {
		qs[i] = question.Question{User: user, Week: week, Text: text}
	}
	return qs
}

// TextSequence hands out numbered question texts ("question 1", "question 2", ...).
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type TextSequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewTextSequence creates a sequence whose texts start with prefix.
// An empty prefix defaults to "question".
func NewTextSequence(prefix string) *TextSequence {
	if prefix == "" {
		prefix = "question"
	}
	return &TextSequence{prefix: prefix}
}

// Next returns the next text. The first call returns "<prefix> 1".
func (s *TextSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s %d", s.prefix, s.n)
}

// Count returns how many texts have been handed out.
func (s *TextSequence) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Reset restarts numbering so the next call to Next returns "<prefix> 1".
func (s *TextSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}

// Batch builds n questions in (user, week) with texts drawn from s.
func (s *TextSequence) Batch(user string, week uint8, n int) []question.Question {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = s.Next()
	}
	return Partition(user, week, texts...)
}
