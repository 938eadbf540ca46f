//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
)

var ServiceSet = wire.NewSet(
	NewConfig,
	NewFieldEdgeClient,
	NewToolRegistry,
	NewDispatcher,
	NewGateway,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	ServiceSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
