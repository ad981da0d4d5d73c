package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portalguard/pkg/guard"
	"github.com/dmitrymomot/portalguard/pkg/tokenstore"
)

var checkFlags struct {
	token string
	from  string
	at    string
}

var checkCmd = &cobra.Command{
	Use:   "check PATH",
	Short: "Run the guard for a navigation without a server",
	Long: `Resolves PATH through the route table and runs the navigation guard
against an in-memory token slot holding --token.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		table, err := loadTable()
		if err != nil {
			return err
		}

		now := time.Now()
		if checkFlags.at != "" {
			if now, err = time.Parse(time.RFC3339, checkFlags.at); err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
		}

		g := guard.New(
			guard.Policy{LoginPath: portalCfg.LoginPath, HomePath: portalCfg.HomePath},
			nil,
			guard.WithTokenKey(portalCfg.TokenKey),
			guard.WithClock(func() time.Time { return now }),
			guard.WithLogger(log),
		)

		store := tokenstore.NewMemoryStore()
		if checkFlags.token != "" {
			if err := store.Set(ctx, g.TokenKey(), checkFlags.token); err != nil {
				return err
			}
		}

		m, err := table.Resolve(args[0])
		if err != nil {
			return err
		}

		var from guard.Destination
		if checkFlags.from != "" {
			if fm, err := table.Resolve(checkFlags.from); err == nil {
				from = guard.Destination{Path: fm.Path, Meta: fm.Entry.Meta}
			}
		}

		state, reason := guard.Evaluate(checkFlags.token, nil, now)
		out := g.Check(ctx, store, guard.Destination{Path: m.Path, Meta: m.Entry.Meta, Requested: m.RedirectedFrom}, from)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "path:     %s\n", m.Path)
		if m.Redirected() {
			fmt.Fprintf(w, "from:     %s (route redirect)\n", m.RedirectedFrom)
		}
		fmt.Fprintf(w, "session:  %s\n", state)
		if reason != nil {
			fmt.Fprintf(w, "invalid:  %v\n", reason)
		}
		fmt.Fprintf(w, "outcome:  %s\n", out)
		if out.Reason != guard.ReasonNone {
			fmt.Fprintf(w, "reason:   %s\n", out.Reason)
		}

		if _, err := store.Get(ctx, g.TokenKey()); errors.Is(err, tokenstore.ErrNotFound) && checkFlags.token != "" {
			fmt.Fprintln(w, "token:    cleared")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.token, "token", "", "token held in the slot")
	checkCmd.Flags().StringVar(&checkFlags.from, "from", "", "path the navigation starts from")
	checkCmd.Flags().StringVar(&checkFlags.at, "at", "", "evaluate at this RFC 3339 time instead of now")
	rootCmd.AddCommand(checkCmd)
}
