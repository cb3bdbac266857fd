package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dq/internal/question"
)

// To regenerate golden files, run:
//
//	go test ./internal/store -update
func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestEncodeQuestions_Golden(t *testing.T) {
	qs := []question.Question{
		{User: "alice", Week: 3, Text: "What does <T> mean?"},
		{User: "alice", Week: 3, Text: "Pros & cons of \"unsafe\"?"},
	}

	data, err := encodeQuestions(qs)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "partition", data)
}

func TestEncodeQuestions_NilIsEmptyArray(t *testing.T) {
	data, err := encodeQuestions(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSetQuestions_OnDiskLayoutGolden(t *testing.T) {
	s := createTestStore(t)
	qs := []question.Question{
		{User: "alice", Week: 3, Text: "What does <T> mean?"},
		{User: "alice", Week: 3, Text: "Pros & cons of \"unsafe\"?"},
	}
	require.NoError(t, s.SetQuestions(context.Background(), "alice", 3, qs))

	data, err := os.ReadFile(filepath.Join(s.Root(), "alice", "3"))
	require.NoError(t, err)

	newGoldie(t).Assert(t, "partition", data)
}

func TestDecodeQuestions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []question.Question
		wantErr bool
	}{
		{name: "empty array", input: `[]`, want: []question.Question{}},
		{name: "null", input: `null`, want: []question.Question{}},
		{
			name:  "compact",
			input: `[{"user":"bob","week":1,"text":"hi"}]`,
			want:  []question.Question{{User: "bob", Week: 1, Text: "hi"}},
		},
		{name: "object not array", input: `{"user":"bob"}`, wantErr: true},
		{name: "week out of range", input: `[{"user":"bob","week":999,"text":"x"}]`, wantErr: true},
		{name: "truncated", input: `[{"user":`, wantErr: true},
		{name: "empty file", input: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeQuestions([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
