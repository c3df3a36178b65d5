package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kinshare/server/blobstore"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/db"
	"github.com/kinshare/server/logging"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/router"
	"github.com/kinshare/server/session"
)

func main() {
	var err error

	// Optional .env file; env vars set in the environment win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if _, err := logging.Setup(cfg.LogLevel, os.Stderr); err != nil {
		slog.Error("Error configuring logging", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Pre-approve and promote the configured admin
	if err := db.BootstrapAdmin(dbConn, cfg.AdminEmail); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	// Image storage
	disk, err := blobstore.NewDisk(cfg.DataDir, cfg.BaseURL)
	if err != nil {
		slog.Error("blob store init failed", "error", err)
		os.Exit(1)
	}

	// Session manager; started before the router takes traffic
	sessions := session.NewManager(dbConn)
	sessions.OnChange(func(ev session.Event) {
		switch ev.Type {
		case session.EventSignedIn:
			slog.Info("signed in", "account_id", ev.Account.ID, "role", ev.Profile.Role)
		case session.EventSignedOut:
			slog.Info("signed out")
		}
	})
	sessions.Start()
	defer sessions.Stop()

	// Create router
	mux := router.NewRouter(dbConn, cfg, sessions, disk)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
