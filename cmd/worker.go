package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
	"github.com/frahmantamala/asset-lifecycle/internal/notification"
	"github.com/frahmantamala/asset-lifecycle/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Worker management commands",
	Long:  `Start background workers for notification processing`,
}

var notificationWorkerCmd = &cobra.Command{
	Use:   "notification",
	Short: "Start notification worker",
	Long:  `Start the worker that delivers return notices for scheduled asset recoveries`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotificationWorker()
	},
}

func startNotificationWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	eventBus := events.NewEventBus(appLogger)
	mailer := notification.NewSMTPMailer(cfg.Notification, appLogger)
	notification.NewEventHandler(mailer, appLogger).RegisterHandlers(eventBus)

	appLogger.Info("notification worker started",
		"notifications_enabled", cfg.Notification.Enabled,
		"smtp_host", cfg.Notification.SMTPHost)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	appLogger.Info("notification worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	appLogger.Info("received signal, shutting down notification worker", "signal", sig)
}

func init() {
	workerCmd.AddCommand(notificationWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
