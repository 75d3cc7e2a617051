package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheetstep/pkg/api"
	"sheetstep/pkg/config"
	"sheetstep/pkg/sheets"
	"sheetstep/pkg/xlsx"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "sheetstep.toml", "Config file path")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	_ = godotenv.Load()

	ds, err := config.NewDatastore(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	svc, err := newService(ds.Store)
	if err != nil {
		log.Fatalf("Failed to create spreadsheet service: %v", err)
	}

	router := api.GetRouter(svc)
	if router != nil {
		go startServer(router, ds.Store.ListenAddress)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}
}

func newService(store config.Store) (sheets.Service, error) {
	if store.XLSXFile != "" {
		log.Infof("Using local workbook: %s", store.XLSXFile)
		return xlsx.NewBackend(store.XLSXFile), nil
	}
	return sheets.NewClient(context.Background(), store.CredentialsFile, store.SpreadsheetID)
}

func startServer(router http.Handler, addr string) {
	server := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
