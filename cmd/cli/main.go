package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/infrastructure/config"
	"github.com/iho/finbook/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finbook-cli",
		Short: "Finbook CLI tool",
		Long:  `A command line interface for interacting with the Finbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Finbook API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Report commands
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Report queries",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income/expense summary",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reports/summary")
		},
	}

	var year string
	monthlyCmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show monthly expense breakdown",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reports/monthly"
			if year != "" {
				path += "?year=" + year
			}
			getJSON(path)
		},
	}
	monthlyCmd.Flags().StringVar(&year, "year", "", "Calendar year (defaults to current)")

	reportCmd.AddCommand(summaryCmd, monthlyCmd)
	rootCmd.AddCommand(reportCmd)

	// Reminder commands
	remindersCmd := &cobra.Command{
		Use:   "reminders",
		Short: "Reminder queries",
	}

	digestCmd := &cobra.Command{
		Use:   "digest",
		Short: "Show the nearest-due pending reminders",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/reminders/summary")
		},
	}

	remindersCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(remindersCmd)

	// Migration commands
	var migrationsPath string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	// Token generation
	var ownerID string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a bearer token for an owner",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if cfg.JWTSecret == "" {
				fmt.Println("JWT_SECRET is not set")
				os.Exit(1)
			}

			manager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
			signed, err := manager.Generate(ownerID)
			if err != nil {
				fmt.Printf("Failed to generate token: %v\n", err)
				os.Exit(1)
			}

			fmt.Println(signed)
		},
	}
	tokenCmd.Flags().StringVar(&ownerID, "owner", "default", "Owner ID to embed in the token")
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
