// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cfo implements a "virtual CFO" advisor that answers questions about
// a personal finance ledger using a streaming language model.
//
// The model is asked to reply with a single JSON object whose "actions"
// field is an array of typed action objects. Because the reply arrives a few
// characters at a time, a [Collector] re-parses the growing text after each
// chunk (see package partial) and reports each action as soon as the model
// has moved on to the next one, so the caller can render it without waiting
// for the whole reply.
//
// # Packages
//
//   - syntax: a JSON scanner, an event-driven stream parser, and the scope
//     closer that completes a truncated JSON text.
//   - ast: a JSON value tree built on the stream parser.
//   - partial: best-effort parsing of truncated JSON.
//   - finance: the ledger model and calculators.
//   - store: SQLite persistence for the ledger.
//   - llm: token-streaming model clients.
//   - config: settings for the cfo command-line tool.
package cfo
