package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/roach88/dq/internal/question"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store provides durable storage for question partitions under one root
// directory. It is not safe for concurrent use on its own; share it through
// a Guard.
type Store struct {
	root   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store rooted at root, creating the directory and any missing
// parents. A creation failure is logged, not returned: operations that need
// the directory retry the creation or report the error themselves.
func New(root string, opts ...Option) *Store {
	s := &Store{root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(root, dirPerm); err != nil {
		s.logger.Warn("could not create store root", "root", root, "error", err)
	}
	return s
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// partitionPath maps a validated key to <root>/<user>/<week>.
func (s *Store) partitionPath(k question.Key) string {
	return filepath.Join(s.root, k.User, strconv.FormatUint(uint64(k.Week), 10))
}

// resolve validates user and returns the normalized key and its file path.
func (s *Store) resolve(op, user string, week uint8) (question.Key, string, error) {
	u, err := question.ValidateUser(user)
	if err != nil {
		return question.Key{}, "", &Error{Kind: KindInvalidKey, Op: op, Path: user, Err: err}
	}
	k := question.Key{User: u, Week: week}
	return k, s.partitionPath(k), nil
}

// ensureRoot recreates the root directory if it has gone missing.
func (s *Store) ensureRoot(op string) error {
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return ioError(op, s.root, err)
	}
	return nil
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
