// Package replay reads recorded test-run event logs and feeds them
// through a render.Recorder.
//
// A log is JSON lines: one event object per line, in the order the
// engine emitted them. The package decodes events, optionally paces
// playback by the recorded instants, follows growing logs, validates
// lines against the event schema, and summarizes run timing.
package replay
