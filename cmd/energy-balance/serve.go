package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_balance/internal/model"
	"energy_balance/internal/series"
	"energy_balance/internal/service"
	"energy_balance/internal/store"
	"energy_balance/internal/ws"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve balances over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	st, in, err := a.load()
	if err != nil {
		return err
	}

	hub := ws.NewHub(a.logger)
	bridge := ws.NewBridge(hub, a.logger)
	svc := service.New(st, in, a.cfg.ZoneIDs, bridge, a.logger)

	// A failed first run still leaves the server up for later recomputes.
	if _, err := svc.Recompute(nil); err != nil {
		a.logger.Warn("initial balance failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           newMux(svc, ws.NewHandler(hub, svc, a.logger), a.cfg.Output.Storage, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func newMux(svc *service.Service, wsHandler http.Handler, storage bool, logger *zap.Logger) *http.ServeMux {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", wsHandler)

	mux.HandleFunc("GET /api/balance", func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("run"); id != "" {
			run, err := svc.Run(id)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			writeJSON(w, logger, http.StatusOK, runResponse(run, storage))
			return
		}
		run, ok := svc.Latest()
		if !ok {
			http.Error(w, "no balance computed yet", http.StatusNotFound)
			return
		}
		writeJSON(w, logger, http.StatusOK, runResponse(run, storage))
	})
	mux.HandleFunc("POST /api/balance/recompute", func(w http.ResponseWriter, r *http.Request) {
		var req ws.RecomputePayload
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}
		run, err := svc.Recompute(req.ZoneIDs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, logger, http.StatusOK, runResponse(run, storage))
	})
	return mux
}

type balanceResponse struct {
	RunID      string              `json:"run_id"`
	ComputedAt string              `json:"computed_at"`
	ZoneIDs    []string            `json:"zone_ids"`
	Result     model.BalanceResult `json:"result"`
	Warnings   []series.Warning    `json:"warnings,omitempty"`
}

func runResponse(run store.Run, storage bool) balanceResponse {
	return balanceResponse{
		RunID:      run.ID,
		ComputedAt: run.ComputedAt.UTC().Format(time.RFC3339),
		ZoneIDs:    run.ZoneIDs,
		Result:     run.Result.Output(storage),
		Warnings:   run.Result.Warnings,
	}
}

// writeJSON encodes v before committing status, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("encoding response", zap.Error(err))
		http.Error(w, "encoding response failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("writing response", zap.Error(err))
	}
}
