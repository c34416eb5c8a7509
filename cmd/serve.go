package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/config"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/content"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/site"
)

const debounceDuration = 500 * time.Millisecond

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on change",
	Long: `The serve command performs an initial development build (drafts included),
serves the output directory and watches the content, static and data
directories, rebuilding the site after changes settle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		builder := site.NewBuilder(appConfig, logger, site.WithDevelopment(true))
		if _, err := builder.Build(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		rebuilder := &rebuilder{build: builder.Build, log: logger, delay: debounceDuration}
		defer rebuilder.stop()
		for _, dir := range watchDirs(appConfig) {
			watchTree(watcher, dir, logger)
		}
		go watch(ctx, watcher, rebuilder, logger)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           newServer(appConfig.OutputDir),
			ReadHeaderTimeout: 5 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving site",
				zap.String("dir", appConfig.OutputDir),
				zap.String("url", fmt.Sprintf("http://localhost:%d", serverPort)),
			)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("http server: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}

// newServer serves dir without directory listings and with caching disabled.
func newServer(dir string) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), noCache())
	r.NoRoute(gin.WrapH(http.FileServer(gin.Dir(dir, false))))
	return r
}

func noCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

func watchDirs(cfg config.Config) []string {
	dirs := []string{filepath.Join(cfg.ContentDir, content.BlogDir), cfg.StaticDir}
	if cfg.DataDir != "" {
		dirs = append(dirs, cfg.DataDir)
	}
	return dirs
}

// watchTree adds root and every directory below it; fsnotify is not recursive.
func watchTree(w *fsnotify.Watcher, root string, log *zap.Logger) {
	if !isDir(root) {
		log.Debug("directory not found, not watching", zap.String("dir", root))
		return
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn("error walking directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				log.Warn("failed to watch directory", zap.String("dir", path), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("error during directory walk", zap.String("dir", root), zap.Error(err))
	}
	log.Debug("watching", zap.String("dir", root))
}

func watch(ctx context.Context, w *fsnotify.Watcher, r *rebuilder, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				watchTree(w, event.Name, log)
			}
			r.trigger()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Error("watcher error", zap.Error(err))
		}
	}
}

// rebuilder coalesces bursts of triggers into one build after delay.
type rebuilder struct {
	build func() (*site.Result, error)
	log   *zap.Logger
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	// running serialises builds started by overlapping timers.
	running sync.Mutex
}

func (r *rebuilder) trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.run)
}

func (r *rebuilder) run() {
	r.running.Lock()
	defer r.running.Unlock()
	r.log.Info("rebuilding site")
	if _, err := r.build(); err != nil {
		r.log.Error("rebuild failed", zap.Error(err))
	}
}

func (r *rebuilder) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
