// Package consent implements the cookie-consent preferences store.
//
// A visitor starts in NoDecision. AcceptAll, RejectAll and SaveCustom
// persist the preference record with a fresh timestamp, set the consent
// flag and publish an Event on the Bus. Revoke deletes both records.
//
// Consumers that load third-party scripts subscribe to the bus instead of
// being called by the store:
//
//	bus := consent.NewBus()
//	consent.Subscribe(bus, adProvider, analyticsProvider, logger)
//	store := consent.NewStore(local, consent.WithBus(bus))
//	store.AcceptAll(ctx) // adProvider.LoadAds and analyticsProvider.LoadAnalytics run
package consent
