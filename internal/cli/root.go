package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/accountctl/internal/app"
	"github.com/lu-zhengda/accountctl/internal/config"
	"github.com/lu-zhengda/accountctl/internal/logger"
	"github.com/lu-zhengda/accountctl/internal/provider/httpapi"
	"github.com/lu-zhengda/accountctl/internal/session"
	"github.com/lu-zhengda/accountctl/internal/store"
	"github.com/lu-zhengda/accountctl/internal/store/sqlite"
	"github.com/lu-zhengda/accountctl/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	apiURLFlag   string
	logLevelFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "accountctl",
		Short:        "Account manager for the terminal",
		Long:         "Log in with email or phone number, view your profile and delete your account.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			return tui.Run(e.svc)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("accountctl %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "account service base URL (overrides config)")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error")
	root.AddCommand(newLoginCmd())
	root.AddCommand(newMeCmd())
	root.AddCommand(newDeleteAccountCmd())
	root.AddCommand(newStatusCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is everything a command needs to run an account flow.
type env struct {
	svc     *app.AccountService
	log     zerolog.Logger
	closers []func() error
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// openEnv wires config, logging, storage and the remote client. Tests
// replace it to point commands at a local server.
var openEnv = func() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	e := &env{}

	logFile, err := logger.OpenFile(config.DataDir())
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, logFile.Close)
	e.log = logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: logFile,
	})

	s, err := openStore(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append(e.closers, s.Close)

	ttl, _ := cfg.SessionTTL()
	timeout, _ := cfg.APITimeout()

	client, err := httpapi.New(cfg.API.BaseURL,
		httpapi.WithTimeout(timeout),
		httpapi.WithUserAgent("accountctl/"+version),
	)
	if err != nil {
		e.Close()
		return nil, err
	}

	mirror := session.NewMirror(s, ttl, e.log)
	e.svc = app.NewAccountService(client, mirror, e.log)

	e.log.Debug().
		Str("api", cfg.API.BaseURL).
		Str("backend", cfg.Storage.Backend).
		Msg("environment ready")
	return e, nil
}

// openStore opens the configured session backend.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendKeyring:
		return store.NewKeyringStore(), nil
	default:
		return openDB()
	}
}

// openDB creates the data directory and opens the SQLite database.
func openDB() (*sqlite.DB, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "accountctl.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
