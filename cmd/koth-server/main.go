// Package main implements the King of the Hill game server with a RESTful API
// and an optional SQLite move journal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"koth/cmd/koth-server/cli"
	"koth/internal/service"
	"koth/internal/storage"
	"koth/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Database maintenance subcommand
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite move journal (disables journaling if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		pf, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pf.Release()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Move journal (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing move journal at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service owns the store from here and closes it on shutdown
	svc := service.New(store)

	// 3. HTTP API
	app := http.NewFiberApp(svc, *dev)
	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("King of the Hill API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Service first: later requests get 503 and pending long-polls return
	// before the listener drains
	if err := svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
