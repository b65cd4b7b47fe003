package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/LaMitaOne/glint/internal/platform/tui"
)

var (
	flagServeHost    string
	flagServePort    int
	flagServeHostKey string
	flagServeIdle    int
	flagServeNoSave  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the glint SSH server",
	Long: `Start an SSH server that lets users connect and watch effects.

Each SSH connection gets its own session with an effect picker menu and
its own engine worker. Run records are stored per-server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at .ssh/glint_ed25519

Examples:
  glint serve                            # Listen on :23235 with auto-generated key
  glint serve --port 2222                # Listen on port 2222
  glint serve --host 127.0.0.1           # Bind the loopback interface only
  glint serve --host-key ./my_host_key   # Use specific host key
  glint serve --db ./runs.db             # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeHost, "host", "", "Interface to bind (default: config value)")
	serveCmd.Flags().IntVar(&flagServePort, "port", 0, "Port to listen on (default: config value)")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagServeIdle, "idle-timeout", 0, "Idle minutes before disconnecting (default: config value)")
	serveCmd.Flags().BoolVar(&flagServeNoSave, "no-save", false, "Do not record remote runs in the database")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyEffectConfigs(cfg)
	logger := newLogger(cfg)

	address := cfg.SSH.Address
	if flagServeHost != "" || flagServePort > 0 {
		host, port, splitErr := net.SplitHostPort(address)
		if splitErr != nil {
			host, port = "", "23235"
		}
		if flagServeHost != "" {
			host = flagServeHost
		}
		if flagServePort > 0 {
			port = strconv.Itoa(flagServePort)
		}
		address = net.JoinHostPort(host, port)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = address
	srvCfg.DBPath = cfg.DBPath
	srvCfg.Engine = engineOptions(cfg, logger)
	srvCfg.SaveRuns = !flagServeNoSave
	if cfg.SSH.HostKeyPath != "" {
		srvCfg.HostKeyPath = cfg.SSH.HostKeyPath
	}
	if flagServeHostKey != "" {
		srvCfg.HostKeyPath = flagServeHostKey
	}
	if cfg.SSH.IdleMinutes > 0 {
		srvCfg.IdleTimeout = time.Duration(cfg.SSH.IdleMinutes) * time.Minute
	}
	if flagServeIdle > 0 {
		srvCfg.IdleTimeout = time.Duration(flagServeIdle) * time.Minute
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting glint SSH server on %s\n", srvCfg.Address)
	if _, port, splitErr := net.SplitHostPort(srvCfg.Address); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
