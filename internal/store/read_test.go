package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dq/internal/question"
	"github.com/roach88/dq/internal/testutil"
)

func TestGetQuestions_MissingPartitionIsEmpty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.GetQuestions(context.Background(), "nobody", 9)
	require.NoError(t, err)
	assert.NotNil(t, got, "empty slice, not nil")
	assert.Empty(t, got)
}

func TestGetQuestions_MalformedFile(t *testing.T) {
	s := createTestStore(t)
	writeRaw(t, s, "alice/2", `[{"user": "alice", "week": 2, `)

	_, err := s.GetQuestions(context.Background(), "alice", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestGetQuestions_NullFileIsEmpty(t *testing.T) {
	s := createTestStore(t)
	writeRaw(t, s, "alice/2", `null`)

	got, err := s.GetQuestions(context.Background(), "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, []question.Question{}, got)
}

func TestGetQuestions_ReadsExistingStore(t *testing.T) {
	s := createTestStore(t)
	writeRaw(t, s, "alice/5", `[
  {
    "user": "alice",
    "week": 5,
    "text": "What is a monad?"
  }
]`)

	got, err := s.GetQuestions(context.Background(), "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, testutil.Partition("alice", 5, "What is a monad?"), got)
}

func TestGetQuestions_IOFailure(t *testing.T) {
	s := createTestStore(t)
	writeRaw(t, s, "mallory", "a file where a directory should be")

	_, err := s.GetQuestions(context.Background(), "mallory", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO, "only not-exist is absorbed")
}

func TestGetQuestions_InvalidUser(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetQuestions(context.Background(), "../..", 1)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestGetAllQuestions_Aggregates(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := testutil.Partition("alice", 1, "a1", "a2")
	b := testutil.Partition("bob", 2, "b1")
	c := testutil.Partition("bob", 10, "b2")
	require.NoError(t, s.SetQuestions(ctx, "alice", 1, a))
	require.NoError(t, s.SetQuestions(ctx, "bob", 2, b))
	require.NoError(t, s.SetQuestions(ctx, "bob", 10, c))

	got, err := s.GetAllQuestions(ctx)
	require.NoError(t, err)

	var want []question.Question
	want = append(want, a...)
	want = append(want, b...)
	want = append(want, c...)
	assert.ElementsMatch(t, want, got)
}

func TestGetAllQuestions_EmptyStore(t *testing.T) {
	s := createTestStore(t)

	got, err := s.GetAllQuestions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllQuestions_RecreatesRoot(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, os.RemoveAll(s.Root()))

	got, err := s.GetAllQuestions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(s.Root())
	assert.NoError(t, err, "root is bootstrapped lazily")
}

func TestGetAllQuestions_SkipsClutter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := testutil.Partition("alice", 1, "kept")
	require.NoError(t, s.SetQuestions(ctx, "alice", 1, want))

	writeRaw(t, s, "README", "not a user")
	writeRaw(t, s, "alice/notes.txt", "not a week")
	writeRaw(t, s, "alice/300", "out of range week")
	writeRaw(t, s, "alice/.tmp-1-123", "leftover temp file")
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root(), "alice", "5"), 0o755))

	got, err := s.GetAllQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetAllQuestions_FailsOnMalformedPartition(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetQuestions(ctx, "alice", 1, testutil.Partition("alice", 1, "fine")))
	writeRaw(t, s, "bob/2", "{not json")

	_, err := s.GetAllQuestions(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Contains(t, err.Error(), filepath.Join("bob", "2"))
}

func TestGetUsers(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetQuestions(ctx, "alice", 1, testutil.Partition("alice", 1, "a")))
	require.NoError(t, s.SetQuestions(ctx, "bob", 2, testutil.Partition("bob", 2, "b")))
	require.NoError(t, s.SetQuestions(ctx, "bob", 3, testutil.Partition("bob", 3, "c")))
	writeRaw(t, s, "stray.json", "[]")

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

func TestGetUsers_EmptyStore(t *testing.T) {
	s := createTestStore(t)

	users, err := s.GetUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestGetUsers_MissingRoot(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, os.RemoveAll(s.Root()))

	_, err := s.GetUsers(context.Background())
	assert.ErrorIs(t, err, ErrIO)
}

func TestReads_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetQuestions(ctx, "alice", 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.GetAllQuestions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.GetUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
