package consent

import (
	"context"
	"errors"
	"log/slog"
)

// AdProvider loads or hides advertising once consent is resolved.
type AdProvider interface {
	LoadAds(ctx context.Context) error
	HideAds(ctx context.Context) error
}

// AnalyticsProvider loads analytics once consent is resolved.
type AnalyticsProvider interface {
	LoadAnalytics(ctx context.Context) error
}

// Apply invokes the providers allowed by p. Either provider may be nil.
func Apply(ctx context.Context, p Preferences, ads AdProvider, analytics AnalyticsProvider) error {
	var errs []error
	if ads != nil {
		if p.Advertising {
			errs = append(errs, ads.LoadAds(ctx))
		} else {
			errs = append(errs, ads.HideAds(ctx))
		}
	}
	if analytics != nil && p.Analytics {
		errs = append(errs, analytics.LoadAnalytics(ctx))
	}
	return errors.Join(errs...)
}

// Subscribe applies every decision published on bus to the providers.
// Provider failures are logged, never propagated to the store.
func Subscribe(bus *Bus, ads AdProvider, analytics AnalyticsProvider, logger *slog.Logger) (unsubscribe func()) {
	if logger == nil {
		logger = slog.Default()
	}
	return bus.Subscribe(func(ctx context.Context, ev Event) {
		if err := Apply(ctx, ev.Preferences, ads, analytics); err != nil {
			logger.Warn("consent provider failed", "error", err, "revoked", ev.Revoked)
		}
	})
}
