// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the issue tracker's domain types.
//
// # Key Types
//
//   - Issue: a recorded problem with its statement, description, solutions and tags
//   - Solution: a link to a fix plus a free-text remark
//   - SortType: how issue lists are ordered (freq, chro, tag)
//
// # Usage
//
//	sortType, err := model.ParseSortType("freq")
//	if err != nil {
//	    return err // *util.ConfigurationError carrying the list usage
//	}
//	model.SortIssues(issues, sortType)
package model
