// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigator(t *testing.T) {
	n := NewNavigator()
	_, ok := n.Current()
	assert.False(t, ok)
	n.Next()
	n.Prev()
	assert.Equal(t, -1, n.Selected)

	result := Result{
		Values: []Value{{Label: "bug", Insertion: "bug"}, {Label: "urgent", Insertion: "urgent"}},
		Status: StatusTagName,
		Start:  11,
		End:    12,
	}
	n.Update("addtag 1 t/u", result)
	assert.True(t, n.Visible)
	assert.Equal(t, 0, n.Selected)

	n.Next()
	v, ok := n.Current()
	assert.True(t, ok)
	assert.Equal(t, "urgent", v.Label)

	n.Next()
	assert.Equal(t, 0, n.Selected, "wraps forward")
	n.Prev()
	assert.Equal(t, 1, n.Selected, "wraps backward")

	text, caret, ok := n.Accept()
	assert.True(t, ok)
	assert.Equal(t, "addtag 1 t/urgent", text)
	assert.Equal(t, 17, caret)

	n.Reset()
	assert.False(t, n.Visible)
	_, _, ok = n.Accept()
	assert.False(t, ok)
}
