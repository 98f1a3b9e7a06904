package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/hooks"
	"github.com/mark3labs/insightr/internal/orchestrator"
	"github.com/mark3labs/insightr/internal/report"
	"github.com/mark3labs/insightr/internal/store"
	"github.com/mark3labs/insightr/internal/tui/theme"
	"github.com/spf13/cobra"
)

// storeTimeout bounds a single CLI round trip to the store
const storeTimeout = 10 * time.Second

var analysisFlags struct {
	json     bool
	archived bool
}

var analysisCmd = &cobra.Command{
	Use:     "analysis",
	Aliases: []string{"analyses"},
	Short:   "List, inspect and submit analyses",
	Long: `Work with the analysis store.

When a dashboard is running for the same data directory the commands join its
NATS server, so changes show up there immediately. Otherwise an embedded server
is started for the duration of the command.`,
}

func init() {
	analysisCmd.AddCommand(analysisListCmd)
	analysisCmd.AddCommand(analysisShowCmd)
	analysisCmd.AddCommand(analysisSubmitCmd)
	analysisCmd.AddCommand(analysisArchiveCmd)
	analysisCmd.AddCommand(analysisDiffCmd)

	analysisCmd.PersistentFlags().BoolVar(&analysisFlags.json, "json", false, "Print JSON instead of text")
	analysisListCmd.Flags().BoolVarP(&analysisFlags.archived, "all", "a", false, "Include archived analyses")

	for _, f := range submitFlags {
		analysisSubmitCmd.Flags().String(f.name, "", f.usage)
	}
}

// withStore connects to the analysis store for the duration of fn.
func withStore(fn func(ctx context.Context, st *store.Store) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	link, err := orchestrator.Connect(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = link.Close() }()

	return fn(ctx, link.Store)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// printAnalysisLine writes one styled summary line.
func printAnalysisLine(cmd *cobra.Command, a *store.Analysis) {
	s := theme.Current().S()
	line := s.Accent.Render(a.ID) + "  " + s.Text.Render(a.Name) + "  " +
		s.Muted.Render(a.Source+" · "+a.SubmittedAt.Local().Format("Jan 2 15:04"))
	if a.Archived {
		line += s.Muted.Render(" · archived")
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}

var analysisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analyses, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			list, err := st.List(ctx, store.ListParams{IncludeArchived: analysisFlags.archived})
			if err != nil {
				return err
			}
			if analysisFlags.json {
				return printJSON(cmd, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet.")
				return nil
			}
			for _, a := range list {
				printAnalysisLine(cmd, a)
			}
			return nil
		})
	},
}

var analysisShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one analysis (ID or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			a, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if analysisFlags.json {
				return printJSON(cmd, a)
			}
			out, err := report.HighlightJSON(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

// submitFlags maps CLI flag names to criteria fields.
var submitFlags = []struct {
	name  string
	field analysis.Field
	usage string
}{
	{"age-range", analysis.FieldAgeRange, "Age band: 18-24, 25-34, 35-44, 45-54, 55+"},
	{"location", analysis.FieldLocation, "Customer location"},
	{"min-value", analysis.FieldMinPurchaseValue, "Minimum purchase value"},
	{"max-value", analysis.FieldMaxPurchaseValue, "Maximum purchase value"},
	{"frequency", analysis.FieldPurchaseFrequency, "Purchase frequency: weekly, monthly, quarterly, yearly"},
	{"start-date", analysis.FieldStartDate, "Start date (YYYY-MM-DD)"},
	{"end-date", analysis.FieldEndDate, "End date (YYYY-MM-DD)"},
}

// criteriaFromFlags merges the set submit flags into the default criteria.
func criteriaFromFlags(cmd *cobra.Command) analysis.FilterCriteria {
	c := analysis.DefaultCriteria()
	for _, f := range submitFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.name)
		c, _ = c.With(f.field, v)
	}
	return c
}

var analysisSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an analysis from flags",
	Example: `  insightr analysis submit --age-range 25-34 --location Berlin --frequency monthly
  insightr analysis submit --min-value 100 --max-value 500 --start-date 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := criteriaFromFlags(cmd)
		if cfg.Validate {
			if errs := analysis.Validate(c); len(errs) > 0 {
				return fmt.Errorf("invalid criteria: %w", errs)
			}
		}
		hooksCfg, err := hooks.LoadConfig(".")
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, st *store.Store) error {
			a, err := st.Submit(ctx, c, store.SubmitParams{Source: store.SourceCLI})
			if err != nil {
				return err
			}
			out, err := hooks.RunOnSubmit(ctx, hooksCfg, ".", a)
			if err != nil {
				return fmt.Errorf("on_submit hooks: %w", err)
			}
			if out != "" {
				fmt.Fprint(cmd.ErrOrStderr(), out)
			}
			if analysisFlags.json {
				return printJSON(cmd, a)
			}
			printAnalysisLine(cmd, a)
			return nil
		})
	},
}

var analysisArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive an analysis so it is hidden from the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			if err := st.Archive(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", args[0])
			return nil
		})
	},
}

var analysisDiffCmd = &cobra.Command{
	Use:   "diff <id> <id>",
	Short: "Show a unified diff of two analyses' criteria",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			a, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := st.Get(ctx, args[1])
			if err != nil {
				return err
			}
			d, err := report.Diff(a, b)
			if err != nil {
				return err
			}
			if d == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Criteria are identical.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), d)
			return nil
		})
	},
}
