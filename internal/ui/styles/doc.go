// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and styles of the saveit full-screen prompt.

All colors are Lip Gloss AdaptiveColor values so they follow the terminal's
light or dark background. A Theme bundles the styles the shell and its
components render with; NewTheme("dark"), NewTheme("light") or
NewTheme("auto") picks the background explicitly or by detection.

# Palette (colors.go)

  - Cyan - Brand color, prompt and popup border
  - Emerald - Success messages
  - Amber - Status line and tags
  - Rose - Errors
*/
package styles
