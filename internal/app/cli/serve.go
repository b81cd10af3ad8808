package cli

import (
	"fmt"
	"strings"
	"time"

	"yamdb/config"
	"yamdb/database"
	routes "yamdb/internal/app/http"
	"yamdb/internal/infra/mail"
	"yamdb/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")
}

func runServe() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	if !skipMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	mail.SetDefault(senderFromConfig())

	if config.GIN_MODE != "" {
		gin.SetMode(config.GIN_MODE)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: config.CORS_ORIGIN != "*",
		MaxAge:           12 * time.Hour,
	}))

	if err := routes.RegisterRoutes(r); err != nil {
		return err
	}

	logging.L.Info("listening", "port", config.PORT)
	if err := r.Run(":" + config.PORT); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// senderFromConfig uses SMTP when a host is configured and the log otherwise.
func senderFromConfig() mail.Sender {
	if config.SMTP_HOST == "" {
		logging.L.Warn("SMTP_HOST not set, confirmation codes are written to the log")
		return mail.LogSender{}
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     config.SMTP_HOST,
		Port:     config.SMTP_PORT,
		Username: config.SMTP_USERNAME,
		Password: config.SMTP_PASSWORD,
		From:     config.SMTP_FROM,
		UseTLS:   config.SMTP_PORT == 465,
	})
}
