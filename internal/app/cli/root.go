// Package cli wires the yamdb commands.
package cli

import (
	"fmt"
	"os"

	"yamdb/config"
	"yamdb/database"
	"yamdb/internal/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "yamdb",
	Short: "yamdb - reviews of films, books and music",
	Long: `yamdb serves a catalog of titles with user reviews and comments.

Commands:
  serve        Run the HTTP API (default)
  migrate      Create or update the database schema
  import       Load CSV fixture files
  createadmin  Create or promote an administrator account`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logging.Setup(os.Stderr, config.LOG_LEVEL)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, createAdminCmd)
}

// openDB connects, installs the connection as database.DB and prepares join tables.
func openDB() (*gorm.DB, error) {
	db, err := database.InitDB(config.RequireDB())
	if err != nil {
		return nil, err
	}
	if err := database.SetupJoinTables(db); err != nil {
		return nil, err
	}
	return db, nil
}
