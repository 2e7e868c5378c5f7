package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/splitview/internal/serve"
	"github.com/marcus/splitview/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the splitview HTTP server",
	Long: `Start an HTTP server exposing layouts over REST plus a live demo page.

The JSON API covers layout CRUD and a resize endpoint that browser drag
bridges report pixel sizes to. The demo page renders a layout with a
draggable divider and refreshes over SSE when a layout changes. Optional
bearer token authentication and CORS are supported.

If --port is 0 (the default), a random available port is assigned.
The actual port is written to .splitview/serve-port for discovery.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (0 = auto-assign)")
	serveCmd.Flags().StringP("addr", "a", "localhost", "Address to bind to")
	serveCmd.Flags().String("token", "", "Bearer token for authentication (optional)")
	serveCmd.Flags().String("cors", "", "Allowed CORS origin (optional, e.g. http://localhost:3000)")
	serveCmd.Flags().Duration("interval", 2*time.Second, "Poll interval for SSE events")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := getBaseDir()

	st, err := store.Open(dir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Limit connections for long-running server process
	st.SetMaxOpenConns(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port, _ := cmd.Flags().GetInt("port")
	addr, _ := cmd.Flags().GetString("addr")
	token, _ := cmd.Flags().GetString("token")
	cors, _ := cmd.Flags().GetString("cors")
	interval, _ := cmd.Flags().GetDuration("interval")

	config := serve.ServeConfig{
		Port:         port,
		Addr:         addr,
		Token:        token,
		CORSOrigin:   cors,
		PollInterval: interval,
	}

	srv := serve.NewServer(st, dir, config)

	// Start listener (use net.Listen for auto-port support)
	listenAddr := fmt.Sprintf("%s:%d", addr, port)
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", listenAddr, err)
	}

	// Get actual port (may differ from requested if port was 0)
	actualPort := ln.Addr().(*net.TCPAddr).Port

	instanceID, err := serve.GenerateInstanceID()
	if err != nil {
		ln.Close()
		return fmt.Errorf("generate instance id: %w", err)
	}

	portInfo := &serve.PortInfo{
		Port:       actualPort,
		PID:        os.Getpid(),
		StartedAt:  time.Now(),
		InstanceID: instanceID,
	}
	if err := serve.WritePortFile(dir, portInfo); err != nil {
		ln.Close()
		return fmt.Errorf("write port file: %w", err)
	}

	dbPath := filepath.Join(dir, ".splitview", "layouts.db")
	portFilePath := filepath.Join(dir, ".splitview", "serve-port")
	fmt.Fprintf(os.Stderr, "splitview serve listening on http://%s:%d\n", addr, actualPort)
	fmt.Fprintf(os.Stderr, "  base dir:   %s\n", dir)
	fmt.Fprintf(os.Stderr, "  database:   %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "  port file:  %s\n", portFilePath)

	srv.StartHub(ctx)
	defer srv.StopHub()

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
	}

	_ = serve.DeletePortFile(dir)
	cancel()

	fmt.Fprintf(os.Stderr, "splitview serve stopped\n")
	return nil
}
