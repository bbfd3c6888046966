package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/conorfennell/tarjeta/internal/cli"
	"github.com/conorfennell/tarjeta/internal/config"
	"github.com/conorfennell/tarjeta/internal/deck"
	"github.com/conorfennell/tarjeta/internal/history"
	"github.com/conorfennell/tarjeta/internal/importer"
	"github.com/conorfennell/tarjeta/internal/session"
	"github.com/conorfennell/tarjeta/internal/storage"
	"github.com/conorfennell/tarjeta/internal/web"
)

const usage = `Usage: tarjeta [flags] <command> [args]

Commands:
  list                           Show every card
  add <spanish> <english>        Add a card
  edit <id> <spanish> <english>  Change a card
  delete <id>                    Remove a card
  study                          Flip through the deck and mark each card
  quiz                           Multiple-choice quiz
  review                         Retry the cards missed in the last study session
  stats                          Accuracy, unstudied and hardest cards
  clear-history                  Delete all study history
  import <dir|file|git-url>      Import ES:/EN: pairs from notes
  serve                          Serve the JSON API

Flags:
`

func main() {
	if err := run(); err != nil {
		slog.Error("tarjeta failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Parse flags, config file and environment
	fs := config.NewFlagSet("tarjeta")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	// 2. Open the database and the stores over it
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	slog.Debug("database opened", "path", cfg.DB)

	d, err := deck.Open(db)
	if err != nil {
		return err
	}
	h, err := history.Open(db)
	if err != nil {
		return err
	}

	app := cli.New(d, h, os.Stdin, os.Stdout, cli.WithQuizOrder(session.Order(cfg.QuizOrder)))

	// 3. Dispatch the command
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return app.List()
	case "add":
		if len(rest) != 2 {
			return usageError(fs, "add takes <spanish> <english>")
		}
		return app.Add(rest[0], rest[1])
	case "edit":
		if len(rest) != 3 {
			return usageError(fs, "edit takes <id> <spanish> <english>")
		}
		return app.Edit(rest[0], rest[1], rest[2])
	case "delete":
		if len(rest) != 1 {
			return usageError(fs, "delete takes <id>")
		}
		return app.Delete(rest[0])
	case "study":
		return app.Study()
	case "quiz":
		return app.Quiz()
	case "review":
		return app.Review()
	case "stats":
		return app.Stats()
	case "clear-history":
		return app.ClearHistory()
	case "import":
		if len(rest) != 1 {
			return usageError(fs, "import takes one source")
		}
		return runImport(d, cfg, rest[0])
	case "serve":
		return serve(web.NewServer(d, h), cfg.Addr)
	default:
		return usageError(fs, fmt.Sprintf("unknown command %q", cmd))
	}
}

func usageError(fs *pflag.FlagSet, msg string) error {
	fs.Usage()
	return errors.New(msg)
}

func runImport(d *deck.Store, cfg *config.Config, source string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := importer.New(d, cfg.ReposDir, os.Stderr).Import(ctx, source)
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d files: %d pairs, %d added, %d duplicates, %d errors.\n",
		res.Files, res.Parsed, res.Added, res.Duplicates, len(res.Errors))
	if len(res.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range res.Errors {
			fmt.Printf("- %s\n", e)
		}
	}
	return nil
}

func serve(handler http.Handler, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
