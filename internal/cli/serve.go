package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/oss-plugin-hub/pluginhub/pkg/catalog"
)

// serveCommand creates the serve command: a read-only HTTP API over the
// documents the pipelines produce.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the produced artifacts over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			server := &http.Server{
				Addr:              addr,
				Handler:           c.apiRouter(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- server.ListenAndServe() }()
			printInfo("Serving %s on %s", c.dataDir, addr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (c *CLI) apiRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/platforms", func(w http.ResponseWriter, _ *http.Request) {
			writeJSONResponse(w, catalog.Platforms)
		})
		r.Get("/top100/{platform}", func(w http.ResponseWriter, req *http.Request) {
			platform := chi.URLParam(req, "platform")
			if !catalog.IsPlatform(platform) {
				http.NotFound(w, req)
				return
			}
			c.serveFile(w, req, c.dataPath(platform, "top100.json"))
		})
		r.Get("/classifications", func(w http.ResponseWriter, req *http.Request) {
			c.serveFile(w, req, c.dataPath("classifications_groq.json"))
		})
		r.Get("/friction", func(w http.ResponseWriter, req *http.Request) {
			c.serveFile(w, req, c.dataPath("pr-friction-cache.json"))
		})
		r.Get("/staleness", func(w http.ResponseWriter, req *http.Request) {
			c.serveFile(w, req, c.dataPath("stale-deps-results.json"))
		})
		r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
			c.serveFile(w, req, c.dataPath("report.json"))
		})
	})
	return r
}

// serveFile streams a produced JSON document. The artifacts are rewritten
// atomically enough for a read-only dashboard; there is no caching layer.
func (c *CLI) serveFile(w http.ResponseWriter, req *http.Request, path string) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		c.Logger.Error("serve artifact", "path", path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
