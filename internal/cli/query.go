package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dq/internal/question"
)

// NewUsersCommand creates the users command.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "users",
		Short:         "List users with stored questions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(rootOpts, cmd)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored question",
		Long: `List every question in every partition of the store.

Order follows the directory listing and is not meaningful.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user> <week>",
		Short: "Show the questions for one user and week",
		Long: `Show the questions stored for one user and week.

A partition that was never written prints as empty, not as an error.

Example:
  dq get alice 3
  dq get alice 3 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runUsers(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	guard, _, err := openStore(opts, cmd, formatter)
	if err != nil {
		return err
	}

	users, err := guard.Users(cmd.Context())
	if err != nil {
		return outputStoreError(formatter, "list users", err)
	}

	return formatter.Success(users, func(w io.Writer) {
		if len(users) == 0 {
			fmt.Fprintln(w, "No users.")
			return
		}
		for _, u := range users {
			fmt.Fprintln(w, u)
		}
	})
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	guard, _, err := openStore(opts, cmd, formatter)
	if err != nil {
		return err
	}

	qs, err := guard.All(cmd.Context())
	if err != nil {
		return outputStoreError(formatter, "list questions", err)
	}

	return formatter.Success(qs, func(w io.Writer) {
		renderQuestions(w, qs)
	})
}

func runGet(opts *RootOptions, user, rawWeek string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	week, err := parseWeekArg(formatter, rawWeek)
	if err != nil {
		return err
	}

	guard, _, err := openStore(opts, cmd, formatter)
	if err != nil {
		return err
	}

	qs, err := guard.Get(cmd.Context(), user, week)
	if err != nil {
		return outputStoreError(formatter, "get questions", err)
	}

	return formatter.Success(qs, func(w io.Writer) {
		renderQuestions(w, qs)
	})
}

// renderQuestions prints one "user/week: text" line per question.
func renderQuestions(w io.Writer, qs []question.Question) {
	if len(qs) == 0 {
		fmt.Fprintln(w, "No questions.")
		return
	}
	for _, q := range qs {
		fmt.Fprintf(w, "%s: %s\n", question.KeyOf(q), q.Text)
	}
}
