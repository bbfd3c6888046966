// Package importer adds Spanish/English pairs from text files, local
// directories or git repositories to the deck.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/tarjeta/internal/deck"
	"github.com/conorfennell/tarjeta/internal/fingerprint"
	"github.com/conorfennell/tarjeta/internal/gitsource"
	"github.com/conorfennell/tarjeta/internal/parser"
)

// Result summarizes one import.
type Result struct {
	Files      int
	Parsed     int
	Added      int
	Duplicates int
	Errors     []error
}

// Importer feeds parsed pairs through the Deck Store, so the usual
// validation and persistence apply to every imported card.
type Importer struct {
	deck     *deck.Store
	reposDir string
	progress io.Writer
}

// New returns an Importer that clones git sources under reposDir.
func New(d *deck.Store, reposDir string, progress io.Writer) *Importer {
	return &Importer{deck: d, reposDir: reposDir, progress: progress}
}

// Import reads every .md and .txt file under source, which may be a file,
// a directory or a git URL, and adds the pairs not already in the deck.
func (im *Importer) Import(ctx context.Context, source string) (Result, error) {
	path := source
	if gitsource.IsRemote(source) {
		localPath, err := gitsource.LocalPath(im.reposDir, source)
		if err != nil {
			return Result{}, err
		}
		if err := gitsource.Sync(ctx, source, localPath, im.progress); err != nil {
			return Result{}, err
		}
		path = localPath
	}

	seen := fingerprint.Set{}
	for _, c := range im.deck.Cards() {
		seen.Add(c.Spanish, c.English)
	}

	var res Result
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !importable(d.Name()) {
			return nil
		}

		res.Files++
		pairs, parseErr := parser.ParseFile(p)
		if parseErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("parsing %s: %w", p, parseErr))
			return nil
		}
		for _, pair := range pairs {
			res.Parsed++
			if !seen.Add(pair.Spanish, pair.English) {
				res.Duplicates++
				continue
			}
			if _, err := im.deck.Add(pair.Spanish, pair.English); err != nil {
				var ve *deck.ValidationError
				if errors.As(err, &ve) {
					res.Errors = append(res.Errors, fmt.Errorf("%s:%d: %w", p, pair.Line, err))
					continue
				}
				return err
			}
			res.Added++
		}
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("failed to import %s: %w", source, walkErr)
	}

	slog.Info("import complete",
		"source", source,
		"files", res.Files,
		"parsed", res.Parsed,
		"added", res.Added,
		"duplicates", res.Duplicates,
		"errors", len(res.Errors),
	)
	return res, nil
}

func importable(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".txt"
}

