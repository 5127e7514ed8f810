package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natcat-sim/natcat/core"
	"github.com/natcat-sim/natcat/core/logger"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulator sessions over SSH on a local port.",
	Long:  `Every SSH connection gets its own isolated filesystem and packages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true
		log.Println("Initializing server...")

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		log.Println("Starting logger...")
		eventFd, err := configuration.OpenEventLog()
		if err != nil {
			return err
		}
		defer eventFd.Close()

		server, err := core.NewServer(configuration, logger.NewJSONLinesLogger(eventFd), log.Default())
		if err != nil {
			return err
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, core.ErrServerClosed) {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("Got signal %q, terminating %d session(s)...", sig, len(server.Sessions()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
