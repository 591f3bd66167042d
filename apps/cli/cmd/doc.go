// Package cmd implements the testglow CLI commands using Cobra.
//
// Available commands:
//   - replay: Render a recorded event log to the terminal
//   - stats: Summarize timing and outcomes of a recorded run
//   - validate: Check an event log against the event schema
//   - version: Show testglow version information
//
// The CLI decides where output goes and how color is resolved; all
// rendering lives in packages/render.
package cmd
