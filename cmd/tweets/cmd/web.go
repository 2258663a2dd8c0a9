package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tweetboard/internal/shell"
	"tweetboard/internal/timeline"
	"tweetboard/internal/web"
)

func newWebCmd(o *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the tweet page in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sh := shell.New(o.client(), timeline.Orderer{Logger: o.logger}, o.logger)
			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           web.New(sh, o.logger).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			fmt.Fprintln(cmd.OutOrStdout(), "========================================")
			fmt.Fprintln(cmd.OutOrStdout(), "  Tweetboard Web")
			fmt.Fprintln(cmd.OutOrStdout(), "========================================")
			fmt.Fprintf(cmd.OutOrStdout(), "  Page: http://localhost:%s/\n", port)
			fmt.Fprintf(cmd.OutOrStdout(), "  API: %s\n", o.apiURL)
			fmt.Fprintln(cmd.OutOrStdout(), "========================================")

			errCh := make(chan error, 1)
			go func() {
				o.logger.Info("🚀 Web UI started", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", o.cfg.WebPort, "Port to listen on")
	return cmd
}
