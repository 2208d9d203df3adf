package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuild_Text(t *testing.T) {
	gs, stdout, _ := newTestState("")
	require.NoError(t, run(gs, "build", "div > .x", "&.active", "a /deep/ b &"))
	assert.Equal(t, `div > .x
  head              div
  child             * .x
&.active
  before            & (direct)
  head              * .active
a /deep/ b &
  head              a
  named:deep        b
  after             &
`, stdout.String())
}

func TestBuild_Compact(t *testing.T) {
	gs, stdout, _ := newTestState("")
	require.NoError(t, run(gs, "build", "--compact", "a > b ~ c"))
	assert.Equal(t, "a>b~c", strings.SplitN(stdout.String(), "\n", 2)[0])
}

func TestBuild_Failures(t *testing.T) {
	gs, stdout, _ := newTestState("")
	err := run(gs, "build", "div", "div )")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 inputs failed", err.Error())
	assert.Equal(t, `div
  head              div
div ): unexpected ")" in selector
`, stdout.String())
}

func TestBuild_JSON(t *testing.T) {
	gs, stdout, _ := newTestState("a b\n\n  .c + d  \n&-x\n")
	require.NoError(t, run(gs, "build", "--format", "json"))
	assert.Contains(t, stdout.String(), `"css": "&-x"`)

	var views []inputView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &views))
	assert.Equal(t, []inputView{
		{Input: "a b", Selectors: []selectorView{{
			CSS:      "a b",
			Subject:  "b",
			Combined: true,
			Parts: []partView{
				{Pos: "1:1", Element: "a"},
				{Pos: "1:3", Combinator: "descendant", Element: "b"},
			},
		}}},
		{Input: ".c + d", Selectors: []selectorView{{
			CSS:      ".c + d",
			Subject:  "d",
			Combined: true,
			Parts: []partView{
				{Pos: "1:1", Implicit: true, Subsequent: []string{".c"}},
				{Pos: "1:6", Combinator: "adjacent-sibling", Element: "d"},
			},
		}}},
		{Input: "&-x", Selectors: []selectorView{{
			CSS:     "&-x",
			Subject: "-x",
			Before:  &appenderView{Direct: true},
			Parts:   []partView{{Pos: "1:2", Element: "-x"}},
		}}},
	}, views)
}

func TestBuild_YAML(t *testing.T) {
	gs, stdout, _ := newTestState("")
	err := run(gs, "build", "--format", "yaml", "h1, :hover > p", "[")
	require.Error(t, err)

	var views []inputView
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &views))
	require.Len(t, views, 2)

	require.Len(t, views[0].Selectors, 2)
	assert.Equal(t, "h1", views[0].Selectors[0].CSS)
	assert.Equal(t, ":hover > p", views[0].Selectors[1].CSS)
	assert.Equal(t, []partView{
		{Pos: "1:5", Implicit: true, Subsequent: []string{":hover"}},
		{Pos: "1:14", Combinator: "child", Element: "p"},
	}, views[0].Selectors[1].Parts)
	assert.Equal(t, "p", views[0].Selectors[1].Subject)
	assert.True(t, views[0].Selectors[1].Combined)
	assert.False(t, views[0].Selectors[0].Combined)
	assert.Empty(t, views[0].Error)

	assert.Empty(t, views[1].Selectors)
	assert.NotEmpty(t, views[1].Error)
}

func TestBuild_Order(t *testing.T) {
	var args []string
	for i := 0; i < 50; i++ {
		args = append(args, fmt.Sprintf(".c%d", i))
	}

	gs, stdout, _ := newTestState("")
	require.NoError(t, run(gs, append([]string{"build", "--jobs", "4", "--format", "json"}, args...)...))

	var views []inputView
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &views))
	require.Len(t, views, len(args))
	for i, v := range views {
		assert.Equal(t, args[i], v.Input)
		assert.Equal(t, args[i], v.Selectors[0].CSS)
	}
}

func TestBuild_DebugLog(t *testing.T) {
	gs, _, stderr := newTestState("")
	require.NoError(t, run(gs, "--log-level", "debug", "build", "a >"))
	assert.Contains(t, stderr.String(), "dropping trailing combinator")
	assert.Contains(t, stderr.String(), `input="a >"`)
}

func TestBuild_TerminalStdin(t *testing.T) {
	gs, _, _ := newTestState("")
	gs.stdinIsTTY = true
	err := run(gs, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin is a terminal")
}
