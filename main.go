// Package main boots the Elea Random Items API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/config"
	"github.com/JuzzThyne/ERI-backend/handlers"
	"github.com/JuzzThyne/ERI-backend/initializers"
	"github.com/JuzzThyne/ERI-backend/obs"
	"github.com/JuzzThyne/ERI-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		obs.Logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}
	gin.SetMode(gin.ReleaseMode)
	obs.Logger.Info("service_starting", "driver", cfg.StoreDriver)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := initializers.ConnectToDB(connectCtx, cfg)
	cancelConnect()
	if err != nil {
		os.Exit(1)
	}

	uploader, serveDir, err := initializers.ImageHost(cfg)
	if err != nil {
		obs.Logger.Error("image_host_failed", "error", err)
		os.Exit(1)
	}

	tokens := utils.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	router := handlers.NewRouter(handlers.Deps{
		Items:          catalog.NewService(st, catalog.NewCoordinator(uploader, cfg.MaxUploadFiles)),
		Admins:         admin.NewService(st, tokens),
		Tokens:         tokens,
		Health:         st,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadDir:      serveDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	if err := st.Close(ctx); err != nil {
		obs.Logger.Error("store_close_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
