package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/eartrainer/exercise"
	"github.com/jsphweid/eartrainer/server"
	"github.com/spf13/cobra"
)

var serveSilent bool

func init() {
	serveCmd.Flags().BoolVar(&serveSilent, "silent", false, "don't connect to a midi output")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves drills over http",
	Long:  `Serves drill sessions over http so a UI can drive them`,
	Run: func(cmd *cobra.Command, args []string) {
		c, log := loadConfig()
		player, closePlayer, err := openPlayer(c, log, serveSilent)
		cobra.CheckErr(err)
		defer closePlayer()

		srv := server.New(server.Options{
			Catalog:        exercise.DefaultCatalog(),
			Player:         player,
			Log:            log,
			Settings:       c.ExerciseSettings(),
			CadencePause:   c.Exercise.CadencePause,
			Tempo:          c.Playback.Tempo,
			ReplayDebounce: c.Server.ReplayDebounce,
			CorsOrigins:    c.Server.CorsOrigins,
		})
		httpServer := &http.Server{Addr: c.Server.Addr, Handler: srv.Handler()}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			log.WithField("addr", c.Server.Addr).Info("listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown error: %v", err)
		}
		srv.Close()
	},
}
