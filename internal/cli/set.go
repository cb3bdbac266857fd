package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dq/internal/question"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	File  string
	Texts []string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <user> <week>",
		Short: "Replace the questions for one user and week",
		Long: `Replace the questions stored for one user and week.

Questions come either from repeated --text flags or from a JSON array
(--file, "-" for stdin). Every question in the array must carry the same
user and week as the arguments, or nothing is written.

Example:
  dq set alice 3 --text "What is a closure?" --text "Why immutability?"
  dq set alice 3 --file questions.json
  cat questions.json | dq set alice 3 --file -`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `JSON array of questions ("-" for stdin)`)
	cmd.Flags().StringArrayVarP(&opts.Texts, "text", "t", nil, "question text (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("file", "text")

	return cmd
}

func runSet(opts *SetOptions, user, rawWeek string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	week, err := parseWeekArg(formatter, rawWeek)
	if err != nil {
		return err
	}

	var qs []question.Question
	switch {
	case len(opts.Texts) > 0:
		qs = make([]question.Question, len(opts.Texts))
		for i, text := range opts.Texts {
			qs[i] = question.Question{User: user, Week: week, Text: text}
		}
	case opts.File != "":
		qs, err = readQuestions(opts.File, cmd.InOrStdin())
		if err != nil {
			return outputArgError(formatter, err.Error())
		}
	default:
		return outputArgError(formatter, "one of --file or --text is required")
	}

	guard, _, err := openStore(opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}

	if err := guard.Set(cmd.Context(), user, week, qs); err != nil {
		return outputStoreError(formatter, "set questions", err)
	}

	key := question.Key{User: user, Week: week}
	return formatter.Success(qs, func(w io.Writer) {
		fmt.Fprintf(w, "Stored %d question(s) for %s\n", len(qs), key)
	})
}

// readQuestions decodes a JSON array of questions from path, or from stdin
// when path is "-".
func readQuestions(path string, stdin io.Reader) ([]question.Question, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open questions file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var qs []question.Question
	if err := json.NewDecoder(r).Decode(&qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if qs == nil {
		qs = []question.Question{}
	}
	return qs, nil
}
