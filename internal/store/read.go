package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/dq/internal/question"
)

// GetQuestions returns the questions stored for (user, week).
//
// Returns an empty slice (not nil) if the partition has never been written.
func (s *Store) GetQuestions(ctx context.Context, user string, week uint8) ([]question.Question, error) {
	const op = "get"
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	key, path, err := s.resolve(op, user, week)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []question.Question{}, nil
	}
	if err != nil {
		return nil, ioError(op, key.String(), err)
	}

	qs, err := decodeQuestions(data)
	if err != nil {
		return nil, jsonError(op, key.String(), err)
	}
	return qs, nil
}

// GetAllQuestions returns every question in every partition.
//
// Entries that are not partitions are skipped: files directly under the
// root, directories inside a user directory, and names that are not week
// numbers. The first read or decode failure aborts the walk.
// Order follows the directory listing and callers must not depend on it.
func (s *Store) GetAllQuestions(ctx context.Context) ([]question.Question, error) {
	const op = "all"
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := s.ensureRoot(op); err != nil {
		return nil, err
	}

	users, err := os.ReadDir(s.root)
	if err != nil {
		return nil, ioError(op, s.root, err)
	}

	all := []question.Question{}
	for _, u := range users {
		if !u.IsDir() {
			continue
		}
		if err := checkContext(ctx); err != nil {
			return nil, err
		}

		userDir := filepath.Join(s.root, u.Name())
		weeks, err := os.ReadDir(userDir)
		if err != nil {
			return nil, ioError(op, userDir, err)
		}

		for _, w := range weeks {
			if _, err := question.ParseWeek(w.Name()); err != nil {
				continue
			}
			if !w.Type().IsRegular() {
				continue
			}

			path := filepath.Join(userDir, w.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, ioError(op, path, err)
			}
			qs, err := decodeQuestions(data)
			if err != nil {
				return nil, jsonError(op, path, err)
			}
			all = append(all, qs...)
		}
	}
	return all, nil
}

// GetUsers returns the names of the root's immediate subdirectories, one per
// user with at least one stored partition. Non-directory entries are ignored.
func (s *Store) GetUsers(ctx context.Context) ([]string, error) {
	const op = "users"
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, ioError(op, s.root, err)
	}

	users := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			users = append(users, e.Name())
		}
	}
	return users, nil
}
