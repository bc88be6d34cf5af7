// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides issue persistence for saveit.
//
// Issues, their solutions and their tags live in a single sqlite file opened
// with the pure-Go modernc driver.
//
// # Key Types
//
//   - IssueStore: Issue database plus the listing the user addresses by index
//
// # Usage
//
// Open a store and add an issue:
//
//	store, err := storage.Open(path, logger)
//	issue, err := store.Add(ctx, model.Issue{Statement: "...", Description: "..."})
//
// List issues and address them by their 1-based position:
//
//	issues, err := store.List(ctx, model.SortFrequency)
//	issue, err := store.Get(ctx, 1)
//
// # Candidate Sources
//
// IssueStore implements the suggestion engine's CandidateSource: every call to
// CurrentTagSet or CurrentIssueStatementSet queries the database afresh.
package storage
