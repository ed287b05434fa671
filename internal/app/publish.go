package app

import (
	"context"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/publish"
)

// publish connects to the configured socket.io endpoint and emits the
// selected robots.
func (a *App) publish(ctx context.Context, robots []*config.Articulation) error {
	p, err := publish.Dial(ctx, a.publishOptions())
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Publish(ctx, robots...); err != nil {
		return err
	}
	a.logger.Info("Robots published.", "count", len(robots), "url", a.config.PublishURL)
	return nil
}

func (a *App) publishOptions() publish.Options {
	return publish.Options{
		URL:                a.config.PublishURL,
		Namespace:          a.config.PublishNamespace,
		Event:              a.config.PublishEvent,
		AckEvent:           a.config.PublishAck,
		Timeout:            a.config.PublishTimeout,
		InsecureSkipVerify: a.config.PublishInsecure,
	}
}
