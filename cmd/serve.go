package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/deck/logging"
	"github.com/grovetools/deck/server"
	"github.com/grovetools/deck/ticker"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the composer over a websocket",
		Long: `Serve one composer session over a websocket at /ws. Every connected client
shares the session and receives a snapshot after each change. Launches
open on this machine after the client confirms them.

Examples:
  deck serve
  deck serve --addr 0.0.0.0:7777`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	cmd.Flags().BoolP("yes", "y", false, "Skip host-side confirmation prompts")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	s, err := newSession(cmd, "server", sessionOptions{assumeYes: yes})
	if err != nil {
		return err
	}
	defer s.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(s.ctrl, s.board, s.logger)
	if feed := s.feed(func([]ticker.Quote) { srv.Broadcast() }); feed != nil {
		go feed.Run(ctx)
	}
	s.watchScreen(ctx, cmd)

	pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
	pretty.Path("Serving", "ws://"+addr+"/ws")
	pretty.Field("Items", s.store.Len())

	return srv.ListenAndServe(ctx, addr)
}
