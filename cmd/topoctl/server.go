package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"topodaily/pkg/auth"
	"topodaily/pkg/config"
	"topodaily/pkg/db"
	"topodaily/pkg/reference"
	"topodaily/pkg/server"
	"topodaily/pkg/server/endpoints"
	"topodaily/pkg/server/middleware"
	gormstore "topodaily/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Topodaily application server",
	Long: `Run the Topodaily application server.

Requires the TOPODAILY_SESSION_KEY and DATABASE_URL environment variables.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		sessionKeyB64, ok := os.LookupEnv("TOPODAILY_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "TOPODAILY_SESSION_KEY environment variable is required")
			os.Exit(1)
		}
		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil || len(sessionKey) < 16 {
			fmt.Fprintln(os.Stderr, "Bad TOPODAILY_SESSION_KEY: must be at least 16 bytes, base64-encoded")
			os.Exit(1)
		}

		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		// A bad spreadsheet is a startup failure, not a degraded mode.
		set, err := reference.LoadFile(cfg.ReferenceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to load reference locations from %s: %v\n", cfg.ReferenceFile, err)
			os.Exit(1)
		}
		catalog := reference.NewCatalog(set)
		log.Printf("Loaded %d reference locations from %s", set.Len(), cfg.ReferenceFile)

		if err := seedBootstrapAdmin(database, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to seed bootstrap admin:", err)
			os.Exit(1)
		}

		watch, _ := cmd.Flags().GetBool("watch-locations")
		if watch {
			go func() {
				if err := reference.Watch(context.Background(), cfg.ReferenceFile, catalog); err != nil {
					log.Printf("Location watch stopped: %v", err)
				}
			}()
		}

		session := middleware.NewSessionAuthenticator(sessionKey, cfg.SessionTTL())

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(cfg, catalog, session, database, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-locations", false, "reload the location spreadsheet when it changes")
}

// seedBootstrapAdmin creates the primary administrator on first start.
// The initial password comes from TOPODAILY_ADMIN_PASSWORD and should be
// changed immediately.
func seedBootstrapAdmin(database *gorm.DB, cfg *config.Config) error {
	password := os.Getenv("TOPODAILY_ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return gormstore.NewUsersStore(database).EnsureBootstrapAdmin(cfg.BootstrapAdminUsername, hash)
}
