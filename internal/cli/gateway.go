package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
)

// ErrNoGateway is returned when demo mode is off: this client ships no
// network transport, so the demo gateway is the only one it can open.
var ErrNoGateway = errors.New("no network gateway is built into this client; enable demo mode (--demo or gateway.demo in config)")

// openGateway builds the configured gateway and gates on its API version.
func openGateway(ctx context.Context, cfg config.Config) (dojo.Gateway, error) {
	if !cfg.Gateway.Demo {
		return nil, ErrNoGateway
	}
	g := dojo.NewDemoGateway(cfg.Gateway.DemoSeed)

	info, err := g.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("identify gateway: %w", err)
	}
	if err := dojo.CheckCompatibility(info, cfg.Gateway.MinAPIVersion); err != nil {
		return nil, err
	}
	logger.Debug().Ctx(ctx).Str("gateway", info.Name).Str("api_version", info.APIVersion).Msg("gateway ready")
	return g, nil
}
