// Package orchestrator wires the spell-book loader, environment loader,
// variable store, and HTTP executor together behind a single entry point.
package orchestrator

import (
	"context"
	"io"
	"log/slog"

	questerrors "github.com/randalmurphal/quest/internal/errors"
	"github.com/randalmurphal/quest/internal/executor"
	"github.com/randalmurphal/quest/internal/spellbook"
	"github.com/randalmurphal/quest/internal/store"
)

// Orchestrator owns the components a run needs: the spell-book directory,
// an env-file loader, and a variable store. It carries no state across
// invocations.
type Orchestrator struct {
	BookDir string
	Store   *store.Store
	LoadEnv func() (map[string]string, error)
	Logger  *slog.Logger
}

// New builds an Orchestrator. logger may be nil, in which case slog's
// default logger is used.
func New(bookDir string, st *store.Store, loadEnv func() (map[string]string, error), logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{BookDir: bookDir, Store: st, LoadEnv: loadEnv, Logger: logger}
}

// HandleRun resolves bookName/spellName/envName into a loaded spell-book
// request and executes it, committing any variables the scripts produced.
func (o *Orchestrator) HandleRun(ctx context.Context, bookName, spellName, envName string, out io.Writer) (*executor.Result, error) {
	project := bookName

	fileVars, err := o.LoadEnv()
	if err != nil {
		return nil, err
	}

	storeVars, err := o.Store.Load(ctx, project, envName)
	if err != nil {
		return nil, err
	}

	seed := make(map[string]string, len(fileVars)+len(storeVars))
	for k, v := range storeVars {
		seed[k] = v
	}
	for k, v := range fileVars {
		seed[k] = v
	}

	book, err := spellbook.Load(o.BookDir, bookName+".toml", seed)
	if err != nil {
		return nil, err
	}

	req, ok := book.FindByName(spellName)
	if !ok {
		return nil, questerrors.ErrUnknownSpell(bookName, spellName)
	}

	o.Logger.Debug("running spell", "book", bookName, "spell", spellName, "env", envName)

	result, err := executor.Run(ctx, &book.API, req, seed, out)
	if err != nil {
		return nil, err
	}

	if err := o.Store.UpsertMany(ctx, project, envName, seed); err != nil {
		return nil, err
	}

	return result, nil
}
