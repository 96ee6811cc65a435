package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/abhishek622/interviewPrep/internal/config"
	"github.com/abhishek622/interviewPrep/internal/interview"
	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply report store migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		switch cfg.Report.Store {
		case config.StorePostgres:
			pool, err := openPostgres(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			pool.Close()
		case config.StoreSQLite:
			db, err := openSQLite(cfg)
			if err != nil {
				return err
			}
			db.Close()
		default:
			return fmt.Errorf("REPORT_STORE is %q, nothing to migrate", cfg.Report.Store)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s migrations applied\n", cfg.Report.Store)
		return nil
	},
}

var rolesMode string

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List roles and their interview topics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode := model.InterviewMode(rolesMode)
		if mode != model.ModeTechnical && mode != model.ModeBehavioral {
			return fmt.Errorf("unknown mode %q", rolesMode)
		}

		catalog := interview.DefaultCatalog()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tTOPICS")
		for _, role := range model.Roles {
			label := string(role)
			if !catalog.Has(role) {
				label += " (default topics)"
			}
			fmt.Fprintf(w, "%s\t%s\n", label, strings.Join(catalog.Topics(role, mode), ", "))
		}
		return w.Flush()
	},
}

func init() {
	rolesCmd.Flags().StringVar(&rolesMode, "mode", string(model.ModeTechnical), "Technical or Behavioral")
}
