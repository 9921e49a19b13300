package app

import (
	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/submission"
)

// App bundles what the HTTP controllers need. It is built once in main and
// passed by value; all members are safe for concurrent use.
type App struct {
	*database.Store
	Submissions *submission.Service
	config.Config
}

func New(store *database.Store, cfg config.Config) App {
	return App{
		Store:       store,
		Submissions: submission.New(store),
		Config:      cfg,
	}
}
