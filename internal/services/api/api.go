// Package api provides the HTTP API for the application
package api

import (
	"braindump/internal/platform/config"
	"braindump/internal/platform/logger"
	phttp "braindump/internal/platform/net/http"
	"braindump/internal/platform/store"

	"braindump/internal/modkit"
	"braindump/internal/modkit/httpkit"
	"braindump/internal/modkit/module"

	dumpmod "braindump/internal/services/api/dump/module"
	metamod "braindump/internal/services/api/meta/module"
	prefsmod "braindump/internal/services/api/prefs/module"
	tasksmod "braindump/internal/services/api/tasks/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// tasks and prefs come first; the dump module commits and reads
	// preferences through their ports
	tasks := tasksmod.New(deps)
	prefs := prefsmod.New(deps)

	committer := module.MustPortsOf[tasksmod.Ports](tasks).Service
	prefsPort := module.MustPortsOf[prefsmod.Ports](prefs).Service

	dump := dumpmod.New(
		deps,
		dumpmod.FromConfig(deps.Cfg),
		modkit.WithPorts(dumpmod.Ports{
			Committer: committer,
			Prefs:     prefsPort,
		}),
	)

	// bearer identity: the token is the opaque user id, validated upstream
	auth := httpkit.Auth(httpkit.NewPortFunc(func(token string) (string, error) {
		return token, nil
	}))

	meta := metamod.New(deps)

	mods := []module.Module{
		meta,
		tasks,
		prefs,
		dump,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
		}

		// meta stays public for probes
		meta.MountRoutes(api)

		api.Group(func(priv httpkit.Router) {
			priv.Use(auth)
			tasks.MountRoutes(priv)
			prefs.MountRoutes(priv)
			dump.MountRoutes(priv)
		})
	})
}
