package tasklist

import (
	"github.com/hay-kot/tasklist/internal/core/config"
	"github.com/hay-kot/tasklist/internal/data/storage"
)

// App bundles the services shared by every command. It is allocated before
// flags are parsed and filled in once config and storage are ready.
type App struct {
	Config  *config.Config
	Storage *storage.Storage
	Tasks   *Controller
}

// NewApp creates an App around an initialized controller.
func NewApp(cfg *config.Config, store *storage.Storage, tasks *Controller) *App {
	return &App{
		Config:  cfg,
		Storage: store,
		Tasks:   tasks,
	}
}

// Changes reports external writes to the slot, or nil when not watched.
func (a *App) Changes() <-chan struct{} {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.Changes()
}
