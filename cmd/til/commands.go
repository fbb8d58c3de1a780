package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethanbaker/til/internal/refresh"
	"github.com/ethanbaker/til/internal/state"
	"github.com/ethanbaker/til/internal/tui"
	"github.com/ethanbaker/til/pkg/facts"
	"github.com/ethanbaker/til/pkg/sdk"
	"github.com/ethanbaker/til/pkg/utils"
)

// remoteFactory builds the fact store the controller talks to
type remoteFactory func(cfg *utils.Config) (state.Remote, error)

// defaultRemote talks to the facts API over HTTP
func defaultRemote(cfg *utils.Config) (state.Remote, error) {
	return sdk.NewClient(
		cfg.GetWithDefault("FACTS_API_URL", "http://localhost:8080"),
		cfg.Get("FACTS_API_KEY"),
		sdk.WithTimeout(cfg.GetDuration("FACTS_API_TIMEOUT", sdk.DefaultTimeout)),
	), nil
}

// app holds what every command shares once the root command has loaded config
type app struct {
	newRemote remoteFactory

	envFile string
	apiURL  string
	apiKey  string

	cfg    *utils.Config
	logger *logrus.Logger
}

// controller builds a state controller from the loaded config. logOut receives logs
// unless LOG_FILE is set
func (a *app) controller(logOut io.Writer) (*state.Controller, error) {
	logger, err := utils.NewLogger(a.cfg, logOut)
	if err != nil {
		return nil, err
	}
	a.logger = logger

	registry, err := facts.LoadRegistryWithFallback(a.cfg.Get("CATEGORIES_PATH"))
	if err != nil {
		return nil, err
	}

	remote, err := a.newRemote(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create fact client: %w", err)
	}

	policy := state.PolicyFromConfig(a.cfg)
	return state.New(remote, state.Options{
		Registry: registry,
		Policy:   &policy,
		Logger:   logger,
	}), nil
}

func newRootCmd(newRemote remoteFactory) *cobra.Command {
	a := &app{newRemote: newRemote}

	rootCmd := &cobra.Command{
		Use:           "til",
		Short:         "Share and vote on facts you learned today",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = utils.NewConfigFromEnv(a.envFile)
			if a.apiURL != "" {
				a.cfg.Set("FACTS_API_URL", a.apiURL)
			}
			if a.apiKey != "" {
				a.cfg.Set("FACTS_API_KEY", a.apiKey)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", utils.EnvFile(), "Path to the .env file")
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Facts API base URL (overrides FACTS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Facts API key (overrides FACTS_API_KEY)")

	rootCmd.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newAddCmd(a),
		newVoteCmd(a),
		newCategoriesCmd(a),
	)

	return rootCmd
}

/** tui */

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse, share and vote on facts in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs would corrupt the screen unless they go to LOG_FILE
			ctrl, err := a.controller(io.Discard)
			if err != nil {
				return err
			}

			timeout := a.cfg.GetDuration("FACTS_API_TIMEOUT", sdk.DefaultTimeout)

			if spec := a.cfg.Get("FACTS_REFRESH_SPEC"); spec != "" {
				scheduler, err := refresh.New(spec, ctrl, timeout, a.logger)
				if err != nil {
					return err
				}
				scheduler.Start()
				defer scheduler.Stop()
			}

			return tui.Run(cmd.Context(), ctrl, timeout)
		},
	}
}

/** list */

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facts, best voted first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.controller(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := ctrl.SetCategory(cmd.Context(), category); err != nil {
				return err
			}

			snap := ctrl.Snapshot()
			out := cmd.OutOrStdout()
			if len(snap.Facts) == 0 {
				fmt.Fprintln(out, "No facts for this category yet! Create the first one")
				return nil
			}

			for _, f := range snap.Facts {
				fmt.Fprintln(out, formatFact(f))
			}
			fmt.Fprintf(out, "\nThere are %d facts on database.\n", len(snap.Facts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", facts.AllCategories, "Category to show, or \"all\"")
	return cmd
}

// formatFact renders a fact on one line
func formatFact(f facts.Fact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%4d ", f.ID)
	if f.Disputed() {
		b.WriteString("[DISPUTED] ")
	}
	fmt.Fprintf(&b, "%s (%s) #%s# | interesting %d | mind blowing %d | false %d",
		f.Text, f.Source, f.Category, f.VotesInteresting, f.VotesMindBlowing, f.VotesFalse)

	return b.String()
}

/** add */

func newAddCmd(a *app) *cobra.Command {
	var draft facts.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Share a new fact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.controller(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctrl.UpdateForm(draft)
			f, err := ctrl.Submit(cmd.Context())
			if err != nil {
				if verr, ok := facts.AsValidationError(err); ok {
					for _, v := range verr.Violations {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", v.Field, v.Message)
					}
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Shared fact #%d in %s\n", f.ID, f.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Text, "text", "", "The fact, at most 200 characters")
	cmd.Flags().StringVar(&draft.Source, "source", "", "An http:// or https:// link backing the fact")
	cmd.Flags().StringVar(&draft.Category, "category", "", "Category of the fact")
	return cmd
}

/** vote */

func newVoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <id> <interesting|mindblowing|false>",
		Short: "Vote on a fact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fact id '%s': %w", args[0], err)
			}

			counter, err := facts.ParseCounter(args[1])
			if err != nil {
				return err
			}

			ctrl, err := a.controller(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			// Votes apply to the loaded list
			if err := ctrl.Start(cmd.Context()); err != nil {
				return err
			}

			f, err := ctrl.Vote(cmd.Context(), id, counter)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatFact(*f))
			return nil
		},
	}
}

/** categories */

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories facts can belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := facts.LoadRegistryWithFallback(a.cfg.Get("CATEGORIES_PATH"))
			if err != nil {
				return err
			}

			for _, c := range registry.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %-15s %s\n", c.Name, c.Color, c.Hex)
			}
			return nil
		},
	}
}
