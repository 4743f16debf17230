package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	auditstore "checkpoint/internal/audits/store"
	"checkpoint/internal/bundle"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	checkliststore "checkpoint/internal/checklist/store"
	"checkpoint/internal/platform/postgres"
	progressservice "checkpoint/internal/progress/service"
	id "checkpoint/pkg/domain"
)

func openDB(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		return nil, codeError(2, "--database-url or DATABASE_URL is required")
	}
	db, err := postgres.Open(ctx, url)
	if err != nil {
		return nil, codeError(3, "%s", err)
	}
	return db, nil
}

func newMigrateCmd(databaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, *databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(ctx, db); err != nil {
				return codeError(3, "%s", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

// treeWriter is the part of a checklist store the seed command writes to.
type treeWriter interface {
	ReplaceTree(ctx context.Context, pillars []checklist.Pillar) error
	CountRequirements(ctx context.Context) (int, error)
}

type seedFlags struct {
	dryRun bool
	force  bool
}

func newSeedCmd(databaseURL *string) *cobra.Command {
	var flags seedFlags
	cmd := &cobra.Command{
		Use:   "seed <checklist.yaml>",
		Short: "Validate a checklist seed file and load it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := checkliststore.LoadSeed(args[0])
			if err != nil {
				return codeError(2, "%s", err)
			}
			out := cmd.OutOrStdout()
			describeSeed(out, seed)
			if flags.dryRun {
				return nil
			}
			ctx := cmd.Context()
			db, err := openDB(ctx, *databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			return runSeed(ctx, out, checkliststore.NewPostgres(db), seed, flags.force)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.dryRun, "dry-run", false, "Validate and summarize without writing")
	f.BoolVar(&flags.force, "force", false, "Replace a checklist that is already loaded")
	return cmd
}

func describeSeed(out io.Writer, seed checkliststore.Seed) {
	tree := checklist.NewTree(seed.Pillars)
	standards := 0
	for _, p := range tree.Pillars() {
		standards += len(p.Standards)
	}
	fmt.Fprintf(out, "pillars: %d, standards: %d, requirements: %d\n",
		len(tree.Pillars()), standards, tree.TotalRequirements())
	if dups := tree.Duplicates(); len(dups) > 0 {
		fmt.Fprintf(out, "duplicate ids (first occurrence kept): %s\n", strings.Join(dups, ", "))
	}
}

func runSeed(ctx context.Context, out io.Writer, store treeWriter, seed checkliststore.Seed, force bool) error {
	n, err := store.CountRequirements(ctx)
	if err != nil {
		return codeError(3, "count requirements: %s", err)
	}
	if n > 0 && !force {
		return codeError(2, "checklist already holds %d requirements; use --force to replace it", n)
	}
	if err := store.ReplaceTree(ctx, seed.Pillars); err != nil {
		return codeError(3, "replace checklist: %s", err)
	}
	fmt.Fprintln(out, "checklist loaded")
	return nil
}

// progressOpener is the part of the progress service the command reads.
type progressOpener interface {
	Open(ctx context.Context, auditID id.AuditID) (*progressservice.Session, error)
}

type progressFlags struct {
	format string
}

func newProgressCmd(databaseURL *string) *cobra.Command {
	var flags progressFlags
	cmd := &cobra.Command{
		Use:   "progress <audit-id>",
		Short: "Print the completion of one audit by pillar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auditID, err := id.ParseAuditID(args[0])
			if err != nil {
				return codeError(2, "%s", err)
			}
			if flags.format != "table" && flags.format != "json" {
				return codeError(2, "--format must be table or json")
			}
			ctx := cmd.Context()
			db, err := openDB(ctx, *databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			audits := auditstore.NewPostgres(db)
			loader := bundle.New(cache.New(time.Minute), checkliststore.NewPostgres(db), audits, audits,
				bundle.WithLogger(slog.New(slog.DiscardHandler)),
			)
			svc, err := progressservice.New(audits, loader)
			if err != nil {
				return err
			}
			return runProgress(ctx, cmd.OutOrStdout(), svc, auditID, flags.format)
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", "table", "Output format: table or json")
	return cmd
}

func runProgress(ctx context.Context, out io.Writer, svc progressOpener, auditID id.AuditID, format string) error {
	sess, err := svc.Open(ctx, auditID)
	if err != nil {
		return codeError(3, "%s", err)
	}
	view := sess.View()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Fprintf(out, "%s  %s  %s  %d/%d answered\n\n", view.Number, view.Location, view.State, view.Answered, view.Total)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PILLAR\tANSWERED\tTOTAL\tPERCENT\tSTATUS")
	for _, p := range view.Pillars {
		status := string(p.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%s\n", p.Name, p.Answered, p.Total, p.Percent, status)
	}
	return tw.Flush()
}
