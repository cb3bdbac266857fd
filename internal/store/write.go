package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/dq/internal/question"
)

// SetQuestions replaces the partition (user, week) with qs.
//
// Every question must carry the same user and week as the target key;
// otherwise the whole batch is rejected with ErrQuestionsDisagree and the
// disk is not touched. The file is written to a temp file in the user
// directory and renamed over the partition, so readers never see a
// half-written partition.
func (s *Store) SetQuestions(ctx context.Context, user string, week uint8, qs []question.Question) error {
	const op = "set"
	if err := checkContext(ctx); err != nil {
		return err
	}

	key, path, err := s.resolve(op, user, week)
	if err != nil {
		return err
	}

	for i, q := range qs {
		if !key.Matches(q) {
			return &Error{
				Kind: KindKeyMismatch,
				Op:   op,
				Path: key.String(),
				Err:  fmt.Errorf("question %d belongs to %s", i, question.KeyOf(q)),
			}
		}
	}

	data, err := encodeQuestions(qs)
	if err != nil {
		return jsonError(op, key.String(), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return ioError(op, key.String(), err)
	}

	if err := writeFileAtomic(path, data, filePerm); err != nil {
		return ioError(op, key.String(), err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in path's directory, syncs it,
// and renames it over path. On failure the temp file is removed and any
// existing file at path is left untouched.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Temp names never parse as a week number, so walks skip leftovers.
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
