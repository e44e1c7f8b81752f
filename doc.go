// Package bricks provides the types and functions to keep a personal
// inventory of collectible sets. It is designed to be local-first: the whole
// collection lives in a single storage slot that the user controls.
//
// The core functionalities include:
//   - Items: the canonical record of a tracked set, identified by its
//     catalog number (e.g. "75263-1").
//   - Normalization: a lenient constructor turning any loosely typed record
//     (persisted JSON, spreadsheet rows) into a valid Item.
//   - Metrics: delta, ROI and total score derived from an Item on demand.
//   - Views: filtering and ordering of the collection for display.
//   - Import: classification of spreadsheet rows into new, duplicate and
//     invalid sets.
//   - Store: the owner of the collection, applying mutations and writing the
//     collection back to its storage slot after each of them.
//
// This package serves as the foundational logic for the `sets` command-line
// tool.
package bricks
