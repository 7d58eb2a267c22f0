package server

import (
	"context"
	"net/url"

	"github.com/electa-dev/electa/pkg/action"
	"github.com/electa-dev/electa/pkg/render"
)

// Client events emitted when consent changes which third-party code may
// run.
const (
	// ScriptEvent asks the client to append a script to the head.
	ScriptEvent = "electa:script"

	// AdsEvent switches the article ad slots on or off.
	AdsEvent = "electa:ads"
)

// ScriptDetail is the detail of a ScriptEvent.
type ScriptDetail struct {
	Src         string `json:"src"`
	Async       bool   `json:"async,omitempty"`
	CrossOrigin string `json:"crossOrigin,omitempty"`
}

// AdsDetail is the detail of an AdsEvent.
type AdsDetail struct {
	Enabled bool `json:"enabled"`
}

// scriptInjector implements consent.AdProvider and
// consent.AnalyticsProvider by collecting the scripts a decision allows.
// Pages render them as head tags; action responses carry them as client
// events.
type scriptInjector struct {
	adsClient   string
	analyticsID string

	scripts []render.ScriptTag
	ads     *bool
}

func newScriptInjector(adsClient, analyticsID string) *scriptInjector {
	return &scriptInjector{adsClient: adsClient, analyticsID: analyticsID}
}

// fresh returns an empty injector with the same sources.
func (i *scriptInjector) fresh() *scriptInjector {
	return newScriptInjector(i.adsClient, i.analyticsID)
}

func (i *scriptInjector) LoadAds(context.Context) error {
	enabled := true
	i.ads = &enabled
	if i.adsClient != "" {
		i.scripts = append(i.scripts, render.ScriptTag{
			Src:         AdSenseScriptURL + url.QueryEscape(i.adsClient),
			Async:       true,
			CrossOrigin: "anonymous",
		})
	}
	return nil
}

func (i *scriptInjector) HideAds(context.Context) error {
	enabled := false
	i.ads = &enabled
	return nil
}

func (i *scriptInjector) LoadAnalytics(context.Context) error {
	if i.analyticsID != "" {
		i.scripts = append(i.scripts, render.ScriptTag{
			Src:   AnalyticsScriptURL + url.QueryEscape(i.analyticsID),
			Async: true,
		})
	}
	return nil
}

// drain moves the collected scripts and ad switch into events and resets
// the injector.
func (i *scriptInjector) drain() []action.Event {
	var events []action.Event
	for _, s := range i.scripts {
		events = append(events, action.Event{
			Name:   ScriptEvent,
			Detail: ScriptDetail{Src: s.Src, Async: s.Async, CrossOrigin: s.CrossOrigin},
		})
	}
	if i.ads != nil {
		events = append(events, action.Event{Name: AdsEvent, Detail: AdsDetail{Enabled: *i.ads}})
	}
	i.scripts = nil
	i.ads = nil
	return events
}
