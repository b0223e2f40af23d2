package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"iggraph/pkg/config"
	"iggraph/pkg/instagram"
	"iggraph/pkg/logger"
	"iggraph/pkg/token"
	"iggraph/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// options holds the global flags
type options struct {
	configFile  string
	logLevel    string
	accessToken string
	baseURL     string
	apiVersion  string
	profile     string
	pageSize    int
	output      string
}

// app carries state shared by all commands of one invocation
type app struct {
	opts   options
	cfg    *config.Config
	log    logger.Logger
	tokens token.Store

	// newClient is replaced in tests
	newClient func(cfg *config.Config, log logger.Logger) *instagram.Client
}

func newApp() *app {
	return &app{
		newClient: func(cfg *config.Config, log logger.Logger) *instagram.Client {
			return instagram.NewClient(cfg, log)
		},
	}
}

// newRootCmd builds the command tree around a
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iggraph",
		Short: "Query the Instagram Graph API from the command line",
		Long: `iggraph fetches users and media from the Instagram Graph API and prints
them as typed, validated records.

Access tokens are read from --access-token, IGGRAPH_ACCESS_TOKEN, the config
file, or the system keychain (see 'iggraph token set').`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.opts.output {
			case "text", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("invalid output format %q (want text, json or yaml)", a.opts.output)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.opts.configFile, "config", "c", "", "config file (default is .iggraph.yaml or ~/.config/iggraph/config.yaml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.StringVar(&a.opts.accessToken, "access-token", "", "Graph API access token")
	flags.StringVar(&a.opts.baseURL, "base-url", "", "Graph API base URL")
	flags.StringVar(&a.opts.apiVersion, "api-version", "", "Graph API version, e.g. v21.0")
	flags.StringVarP(&a.opts.profile, "profile", "P", "", "token profile name")
	flags.IntVar(&a.opts.pageSize, "page-size", 0, "default media page size (1-100)")
	flags.StringVarP(&a.opts.output, "output", "o", "text", "output format (text, json, yaml)")

	rootCmd.SetVersionTemplate(`iggraph {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newUserCmd(a), newMediaCmd(a), newTokenCmd(a), newConfigCmd(a))
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	err := newRootCmd(newApp()).Execute()
	_ = logger.Close()
	if err != nil {
		ui.PrintError(os.Stderr, "Error", err)
		os.Exit(1)
	}
}

// load reads configuration and sets up logging once per invocation
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}

	flags := map[string]interface{}{
		"access-token": a.opts.accessToken,
		"base-url":     a.opts.baseURL,
		"api-version":  a.opts.apiVersion,
		"profile":      a.opts.profile,
		"page-size":    a.opts.pageSize,
		"log-level":    a.opts.logLevel,
	}

	cfg, err := config.Load(a.opts.configFile, flags)
	if err != nil {
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.GetLogger().WithField("profile", cfg.Graph.Profile)
	if a.tokens == nil {
		a.tokens = token.DefaultChain()
	}
	return nil
}

// client returns a Graph API client carrying the resolved access token
func (a *app) client() (*instagram.Client, error) {
	if err := a.load(); err != nil {
		return nil, err
	}

	accessToken := a.cfg.Graph.AccessToken
	if accessToken == "" {
		cred, err := a.tokens.Get(a.cfg.Graph.Profile)
		if err != nil {
			return nil, fmt.Errorf("no access token: %w (run 'iggraph token set' or pass --access-token)", err)
		}
		accessToken = cred.AccessToken
		a.log.DebugWithFields("using stored access token", map[string]interface{}{
			"token": token.Mask(accessToken),
		})
	}

	c := a.newClient(a.cfg, a.log)
	c.SetAccessToken(accessToken)
	return c, nil
}

// render writes body in the selected output format. text is used for the text format.
func (a *app) render(w io.Writer, body interface{}, text func() string) error {
	switch strings.ToLower(a.opts.output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(body)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(body); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, text())
		return err
	}
}
