package store

import (
	"bytes"
	"encoding/json"

	"github.com/roach88/dq/internal/question"
)

// encodeQuestions renders a partition as indented JSON.
// HTML escaping is disabled and the encoder's trailing newline is dropped so
// files stay byte-compatible with stores written by earlier servers.
// A nil slice is written as [] rather than null.
func encodeQuestions(qs []question.Question) ([]byte, error) {
	if qs == nil {
		qs = []question.Question{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeQuestions parses a partition file. A stored null reads as empty.
func decodeQuestions(data []byte) ([]question.Question, error) {
	var qs []question.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	if qs == nil {
		qs = []question.Question{}
	}
	return qs, nil
}
