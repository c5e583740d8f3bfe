// Package cli implements the cobra command tree driving the core
// services.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/config/file"
	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/ifcstep"
	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/storage/memory"
	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/storage/sqlite"
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driving"
	"github.com/bauwerk-labs/talk2bim/internal/core/services"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.3.0"

// configKeyLastModel remembers the last loaded model across invocations.
const configKeyLastModel = "model.last_path"

var (
	verboseFlag   bool
	configDirFlag string

	cfgStore       driven.ConfigStore
	catalogStore   driven.CatalogStore
	sessionService driving.SessionService
	queryService   driving.QueryService
)

var rootCmd = &cobra.Command{
	Use:   "talk2bim",
	Short: "Query and preview IFC building models from the terminal",
	Long: `Talk2BIM loads an IFC model, indexes its rooms and building-services
elements, and answers free-text questions against that index. It can
also produce a bounded 3D preview of the model's geometry.`,
	PersistentPreRunE: initServices,
	SilenceUsage:      true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.talk2bim)")
}

// initServices wires the default adapters into the services. Tests
// inject their own services before Execute, in which case wiring is
// skipped.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if sessionService != nil && queryService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore(configDirFlag)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cfgStore = cfg

	dataDir := ""
	if configDirFlag != "" {
		dataDir = filepath.Join(configDirFlag, "data")
	}
	if store, err := sqlite.NewStore(dataDir); err != nil {
		// The catalog is bookkeeping; fall back rather than refusing
		// to start.
		logger.Warn("Catalog unavailable, using in-memory store: %v", err)
		catalogStore = memory.NewCatalogStore()
	} else {
		catalogStore = store
	}

	sessionService = services.NewSessionManager(
		ifcstep.NewOpener(),
		services.NewIndexBuilder(),
		catalogStore,
	)
	queryService = services.NewQueryEngine(cfgStore)
	return nil
}

// ensureSession returns the active session, loading the given path or
// the remembered last model when there is none.
func ensureSession(cmd *cobra.Command, explicitPath string) (*domain.Session, error) {
	if explicitPath == "" {
		if session, ok := sessionService.Current(); ok {
			return session, nil
		}
		if cfgStore != nil {
			explicitPath = cfgStore.GetString(configKeyLastModel)
		}
	}
	if explicitPath == "" {
		return nil, errors.New("no model loaded - run `talk2bim load <file.ifc>` first")
	}
	return sessionService.Load(cmd.Context(), explicitPath)
}

// rememberModel records the path for later invocations. Best effort.
func rememberModel(path string) {
	if cfgStore == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := cfgStore.Set(configKeyLastModel, path); err != nil {
		logger.Warn("Remembering model path failed: %v", err)
	}
}
