package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/easybill/internal/config"
	"github.com/JonMunkholm/easybill/internal/core"
	_ "github.com/JonMunkholm/easybill/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/easybill/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "easybill",
	Short: "easybill dashboard CLI",
	Long: `Inspect the order and shipment exports without starting the web server.

Tables, presets and filters behave exactly as on the dashboard. Fixtures
come from --fixtures (or EASYBILL_FIXTURES) and fall back to the bundled
sample data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(viper.GetString("log-level"), "text")
		return nil
	},
}

func main() {
	_ = godotenv.Load()
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", core.FormatUserError(err))
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("EASYBILL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("fixtures", "", "directory with bestellungen.csv, sendungen.csv and checklisten.csv")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("fixtures", rootCmd.PersistentFlags().Lookup("fixtures"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func registerCommands() {
	rootCmd.AddCommand(tablesCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(checklistCmd())
	rootCmd.AddCommand(headersCmd())
	rootCmd.AddCommand(auditCmd())
}

func fixtures() core.Fixtures {
	if dir := viper.GetString("fixtures"); dir != "" {
		return core.DirFixtures(dir)
	}
	return core.EmbeddedFixtures()
}

// withService loads the fixtures into a fresh, in-memory dashboard session.
func withService(ctx context.Context, fn func(ctx context.Context, s *core.Service) error) error {
	opts := core.Options{}
	if path := os.Getenv("TABLE_VIEWS_FILE"); path != "" {
		views, err := config.LoadViews(path)
		if err != nil {
			return err
		}
		opts.Views = views
	}
	s, err := core.NewService(ctx, fixtures(), opts)
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	return tw
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List dashboard tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *core.Service) error {
				infos := s.ListTables()
				if viper.GetBool("json") {
					return printJSON(infos)
				}
				tw := newTable()
				tw.AppendHeader(table.Row{"Key", "Label", "Group", "Source", "Rows"})
				for _, info := range infos {
					rows, err := s.Rows(info.Key)
					if err != nil {
						return err
					}
					tw.AppendRow(table.Row{info.Key, info.Label, info.Group, info.Source, len(rows)})
				}
				tw.Render()
				return nil
			})
		},
	}
}
