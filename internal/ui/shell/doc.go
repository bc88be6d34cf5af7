// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell provides the full-screen saveit prompt.
//
// The shell is a Bubble Tea model with a scrolling transcript, a single input
// line and a suggestion popup. Every edit of the input line or move of the
// caret asks the Backend for fresh suggestions at the caret; Tab inserts the
// highlighted value, Up and Down move the highlight, Enter runs the line.
package shell
