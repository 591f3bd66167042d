// Package events defines the lifecycle event model a test engine feeds
// into testglow.
//
// The engine owns test execution; this package only describes what it
// reports: a closed set of event kinds, a hierarchical test identity,
// and the metadata (tests, cases, issues) events refer to. Rendering
// lives in packages/render.
package events
