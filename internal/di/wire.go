//go:build wireinject
// +build wireinject

package di

import (
	"QuantAI/pkg/config"
	"QuantAI/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// The cleanup closes the session cache and the event producer.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
