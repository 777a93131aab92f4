package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// runOpsServer exposes liveness and a queue snapshot for monitoring. It is
// an internal endpoint, not a public API surface.
func (a *App) runOpsServer(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := a.pool.Ping(req.Context()); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := a.rdb.Ping(req.Context()).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/queue", func(w http.ResponseWriter, req *http.Request) {
		subs, err := a.submissions.ListPending(req.Context())
		if err != nil {
			a.logger.Error("ops queue snapshot", zap.Error(err))
			http.Error(w, "queue unavailable", http.StatusInternalServerError)
			return
		}

		type item struct {
			ID        int64  `json:"id"`
			AuthorID  int64  `json:"author_id"`
			CreatedAt string `json:"created_at"`
		}
		items := make([]item, 0, len(subs))
		for _, sub := range subs {
			items = append(items, item{
				ID:        sub.ID,
				AuthorID:  sub.AuthorID,
				CreatedAt: sub.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"pending": len(items),
			"items":   items,
		})
	})

	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.WriteTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown ops server", zap.Error(err))
		}
	}()

	a.logger.Info("ops server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
