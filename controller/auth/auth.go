package auth

import (
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
	"github.com/l3hner/hauspilot/syncer"
)

// Deps carries the services the auth controllers work with.
type Deps struct {
	Sessions *session.Manager
	Provider session.Provider
	Hub      *syncer.Hub
	Store    store.Store
	Cfg      *config.Config
	Log      *zap.Logger
}
