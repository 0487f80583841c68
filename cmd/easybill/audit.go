package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/easybill/internal/admin"
	"github.com/JonMunkholm/easybill/internal/config"
	"github.com/JonMunkholm/easybill/internal/core"
)

func auditCmd() *cobra.Command {
	audit := &cobra.Command{Use: "audit", Short: "Inspect and maintain the audit database"}
	audit.AddCommand(auditTailCmd())
	audit.AddCommand(auditPurgeCmd())
	audit.AddCommand(auditResetCmd())
	return audit
}

// withAudit connects to DATABASE_URL and runs fn against the audit table.
func withAudit(ctx context.Context, fn func(ctx context.Context, sink *core.PgAuditSink) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	pool, err := core.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	sink, err := core.NewPgAuditSink(ctx, pool)
	if err != nil {
		return err
	}
	return fn(ctx, sink)
}

func auditTailCmd() *cobra.Command {
	var q core.AuditQuery
	var action string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the newest audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Action = core.AuditAction(action)
			return withAudit(cmd.Context(), func(ctx context.Context, sink *core.PgAuditSink) error {
				entries, err := sink.Recent(ctx, q)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}
				tw := newTable()
				tw.AppendHeader(table.Row{"Time", "Action", "Severity", "Table", "Row", "Change", "Rows"})
				for _, e := range entries {
					change := ""
					if e.ColumnName != "" {
						change = fmt.Sprintf("%s: %s -> %s", e.ColumnName, e.OldValue, e.NewValue)
					}
					tw.AppendRow(table.Row{
						e.CreatedAt.Local().Format(time.DateTime), e.Action, e.Severity,
						e.TableKey, e.RowKey, change, e.RowsAffected,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&q.Limit, "limit", core.DefaultAuditLimit, "number of entries")
	cmd.Flags().StringVar(&q.TableKey, "table", "", "table key filter")
	cmd.Flags().StringVar(&action, "action", "", "action filter")
	return cmd
}

func auditPurgeCmd() *cobra.Command {
	var retention time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete audit entries older than --retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAudit(cmd.Context(), func(ctx context.Context, sink *core.PgAuditSink) error {
				m := &admin.Maintenance{Audit: sink}
				n, err := m.PurgeOlderThan(ctx, retention)
				if err != nil {
					return err
				}
				fmt.Printf("deleted %d entries\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&retention, "retention", 90*24*time.Hour, "keep entries newer than this")
	return cmd
}

func auditResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every audit entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset the audit log without --yes")
			}
			return withAudit(cmd.Context(), func(ctx context.Context, sink *core.PgAuditSink) error {
				m := &admin.Maintenance{Audit: sink}
				if err := m.ResetAll(ctx); err != nil {
					return err
				}
				fmt.Println("audit log reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
