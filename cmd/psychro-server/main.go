// Command psychro-server runs the psychrometric HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/hvactools/psychro/internal/log"
	"github.com/hvactools/psychro/internal/observability"
	"github.com/hvactools/psychro/internal/restserver"
	"github.com/hvactools/psychro/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "psychro.yaml", "Path to configuration source:\n\t\t\t  YAML: psychro.yaml\n\t\t\t  SQLite: psychro.db")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("psychro-server %s\n", version)
		os.Exit(0)
	}

	provider, err := newProvider(*cfgFile, *cfgBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file. Did you pass the -config flag? Run with -h for help: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if err := log.InitWithFile(*debug || cfgData.Logging.Debug, cfgData.Logging.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	controller, err := restserver.NewController(ctx, wg, provider, log.GetSugaredLogger(), observability.NewMetrics())
	if err != nil {
		log.Errorf("Failed to create REST server: %v", err)
		os.Exit(1)
	}

	if err := controller.StartController(); err != nil {
		log.Errorf("Failed to start REST server: %v", err)
		os.Exit(1)
	}
	log.Infof("psychro-server %s listening on %s", version, controller.Server.Addr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Infof("Received signal %v, shutting down...", sig)

	cancel()
	wg.Wait()
}

func newProvider(cfgFile, cfgBackend string) (config.ConfigProvider, error) {
	filename, _ := filepath.Abs(cfgFile)

	switch cfgBackend {
	case "yaml":
		return config.NewYAMLProvider(filename), nil
	case "sqlite":
		provider, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		return provider, nil
	}
	return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
}
