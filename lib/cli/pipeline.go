package cli

import (
	"github.com/go-i2p/logger"
	"github.com/spf13/afero"

	"github.com/titellus/geonetwork-pnf/lib/config"
	"github.com/titellus/geonetwork-pnf/lib/datadir"
	"github.com/titellus/geonetwork-pnf/lib/handler"
)

// node is one resolved deployment.
type node struct {
	app    *config.AppConfig
	layout datadir.Config
	report datadir.SeedReport
}

// resolveNode reads the configuration sources and runs the data directory pipeline.
func resolveNode(fs afero.Fs, assignments []string) (*node, error) {
	app := config.NewAppConfigFromViper()

	props, err := datadir.ParseProperties(assignments)
	if err != nil {
		return nil, newExitCodeError(ExitConfigError, err)
	}
	contextParams, err := datadir.LoadContextParams(app.ContextFilePath())
	if err != nil {
		return nil, newExitCodeError(ExitConfigError, err)
	}
	params, err := handler.Load(app.HandlerFilePath())
	if err != nil {
		return nil, newExitCodeError(ExitConfigError, err)
	}

	log.WithFields(logger.Fields{
		"at":      "resolveNode",
		"webapp":  app.WebappDir,
		"node":    app.NodeID,
		"context": contextParams != nil,
	}).Debug("resolving data directory")

	layout, report, err := datadir.NewBuilder(fs).Build(datadir.Options{
		WebappName:  app.WebappName,
		WebappDir:   app.WebappDir,
		NodeID:      app.NodeID,
		DefaultNode: app.DefaultNode,
		Properties:  props,
		Context:     contextParams,
		Handler:     params,
	})
	if err != nil {
		return nil, newExitCodeError(ExitLayoutError, err)
	}
	return &node{app: app, layout: layout, report: report}, nil
}
