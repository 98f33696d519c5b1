package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/status-im/coin-ticker/board"
	"github.com/status-im/coin-ticker/config"
	"github.com/status-im/coin-ticker/core"
	"github.com/status-im/coin-ticker/filter"
	"github.com/status-im/coin-ticker/format"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "coin-ticker",
		Short: "Cryptocurrency price board with an auxiliary token merged in",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the yaml config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(snapshotCmd(&configPath))
	return root
}

// loadConfig reads the config file, falling back to defaults when it does not exist
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config file %s not found, using defaults", path)
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

func serveCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the board, keep it fresh and serve it over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			// PORT from the environment wins over the flag default
			if envPort := os.Getenv("PORT"); envPort != "" && !cmd.Flags().Changed("port") {
				port = envPort
			}

			ctx := cmd.Context()
			registry, _ := core.Setup(cfg, port)
			if err := registry.StartAll(ctx); err != nil {
				return fmt.Errorf("failed to start services: %w", err)
			}

			<-ctx.Done()
			registry.StopAll()
			log.Println("All services stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "8080", "HTTP listen port")
	return cmd
}

func snapshotCmd(configPath *string) *cobra.Command {
	var (
		query   string
		limit   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Load the board once and print it as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			registry, components := core.Setup(cfg, "")
			if err := registry.StartAll(ctx); err != nil {
				return fmt.Errorf("failed to start services: %w", err)
			}
			defer registry.StopAll()

			select {
			case <-components.Board.Ready():
			case <-ctx.Done():
				return fmt.Errorf("board did not load: %w", ctx.Err())
			}

			if components.Board.State() != board.StateReady {
				return components.Board.Err()
			}

			list := filter.Filter(components.Board.Snapshot().Quotes, query)
			return format.WriteTable(cmd.OutOrStdout(), list, limit)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive name or symbol filter")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to print, 0 for all")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "give up when the board is not loaded in time")
	return cmd
}
