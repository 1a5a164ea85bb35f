package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"pantry-planner/cmd/config"
	migration "pantry-planner/cmd/database/migrate"
	"pantry-planner/domain"
	appconfig "pantry-planner/internal/config"
	"pantry-planner/pkg/repair"
)

func main() {
	root := &cobra.Command{
		Use:          "pantryctl",
		Short:        "Maintenance commands for the pantry database",
		SilenceUsage: true,
	}
	root.AddCommand(migrateCmd(), orphansCmd(), repairCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*gorm.DB, *logrus.Logger, error) {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := appconfig.Load("config.yaml")
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := setup()
			if err != nil {
				return err
			}
			return migration.Migrate(db, log)
		},
	}
}

func orphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "Report items with dangling or missing receipt references",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := setup()
			if err != nil {
				return err
			}

			service := repair.NewRepairService(repair.NewRepairRepository(db), log)
			report, err := service.FindOrphans(context.Background())
			if err != nil {
				return err
			}

			return printJSON(report)
		},
	}
}

func repairCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair orphaned inventory items",
		Long: "Repair items whose receipt reference is broken. Policy \"null\" clears\n" +
			"dangling references; policy \"adopt\" attaches unlinked items to a\n" +
			"synthetic recovery receipt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := setup()
			if err != nil {
				return err
			}

			service := repair.NewRepairService(repair.NewRepairRepository(db), log)
			ctx := context.Background()

			switch policy {
			case "null":
				cleared, err := service.RepairByNulling(ctx)
				if err != nil {
					return err
				}
				return printJSON(map[string]int64{"cleared": cleared})
			case "adopt":
				result, err := service.RepairByAdoption(ctx)
				if err != nil {
					return err
				}
				return printJSON(result)
			default:
				return fmt.Errorf("%w: %q", domain.ErrUnknownRepairPolicy, policy)
			}
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "null", "repair policy: null or adopt")
	return cmd
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
