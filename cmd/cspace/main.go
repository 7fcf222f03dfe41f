// Command cspace is a terminal client for the CSpace collaboration
// server: browse projects, post requirements, discuss them, and chat
// with your team without leaving the terminal.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhruvm/cspace/internal/api"
	"github.com/dhruvm/cspace/internal/config"
	"github.com/dhruvm/cspace/internal/logging"
	"github.com/dhruvm/cspace/internal/session"
	"github.com/dhruvm/cspace/internal/store"
	"github.com/dhruvm/cspace/internal/ui"
)

var version = "dev"

var (
	flagConfig string
	flagServer string
)

// runtime bundles everything a subcommand needs after setup.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	kv      *store.Store
	client  *api.Client
	session *session.Store
}

func setup() (*runtime, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.API.BaseURL = flagServer
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	client := api.New(cfg.API.BaseURL, kv, log)
	return &runtime{
		cfg:     cfg,
		log:     log,
		kv:      kv,
		client:  client,
		session: session.New(kv, client, log),
	}, nil
}

func (rt *runtime) close() {
	rt.kv.Close()
	rt.log.Sync()
}

func runTUI(rt *runtime) error {
	app := ui.New(rt.client, rt.session, rt.kv, rt.log)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func main() {
	root := &cobra.Command{
		Use:          "cspace",
		Short:        "Terminal client for the CSpace collaboration server",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			return runTUI(rt)
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/cspace/config.yaml)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL, overriding the config file")

	join := &cobra.Command{
		Use:   "join <token>",
		Short: "Join a project using an emailed invitation token",
		Long: "Stashes the invitation token and starts the client. The invitation\n" +
			"is redeemed right after sign in and the project opens.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			if err := rt.session.SetPendingInvite(args[0]); err != nil {
				return fmt.Errorf("stash invitation: %w", err)
			}
			return runTUI(rt)
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			rt.session.Logout()
			fmt.Println("Signed out.")
			return nil
		},
	}

	root.AddCommand(join, logout)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
