package toc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
)

func threeHeadings() ([]Heading, Geometry) {
	headings := []Heading{
		{ID: "h1", Title: "One", Level: 2},
		{ID: "h2", Title: "Two", Level: 2, Children: []Heading{{ID: "h2a", Title: "Two A", Level: 3}}},
		{ID: "h3", Title: "Three", Level: 2},
	}
	geo := Geometry{
		"h1":  {Top: 0},
		"h2":  {Top: 100},
		"h2a": {Top: 200},
		"h3":  {Top: 300},
	}
	return headings, geo
}

func TestActiveSection(t *testing.T) {
	t.Parallel()

	offsets := []Offset{{"h1", 0}, {"h2", 100}, {"h3", 300}}
	tests := []struct {
		scrollY float64
		want    string
	}{
		{150, "h2"},
		{0, "h1"},
		{-10, "h1"},
		{99.9, "h1"},
		{100, "h2"},
		{300, "h3"},
		{10000, "h3"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ActiveSection(offsets, tt.scrollY), "scrollY=%v", tt.scrollY)
	}
	require.Equal(t, "", ActiveSection(nil, 50))
}

func TestActiveSectionFirstBelowPosition(t *testing.T) {
	t.Parallel()

	offsets := []Offset{{"intro", 400}, {"usage", 900}}
	require.Equal(t, "intro", ActiveSection(offsets, 0))
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	headings, geo := threeHeadings()
	geo["h2"] = Element{Top: 100, ScrollMarginTop: 20}
	delete(geo, "h2a")

	offsets := Measure(headings, geo, 50)
	require.Equal(t, []Offset{
		{ID: "h1", Top: 50},
		{ID: "h2", Top: 130},
		{ID: "h3", Top: 350},
	}, offsets)
}

func TestIDsOneLevelDeep(t *testing.T) {
	t.Parallel()

	headings := []Heading{{ID: "a", Children: []Heading{{ID: "b", Children: []Heading{{ID: "c"}}}}}}
	require.Equal(t, []string{"a", "b"}, IDs(headings))
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	parent := Heading{ID: "parent", Children: []Heading{
		{ID: "child", Children: []Heading{{ID: "grandchild"}}},
	}}
	require.True(t, IsActive(parent, "parent"))
	require.True(t, IsActive(parent, "child"))
	require.True(t, IsActive(parent, "grandchild"))
	require.False(t, IsActive(parent, "other"))
	require.False(t, IsActive(parent, ""))
	require.False(t, IsActive(Heading{}, ""))
}

func TestCollect(t *testing.T) {
	t.Parallel()

	source := []byte(`# Title

### Orphan

## Getting started

Some text.

### Install *the* CLI

#### Too deep

## Configure ` + "`docsite`" + `

## Custom {#custom-id}
`)
	md := goldmark.New(goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	))
	headings := Parse(md.Parser(), source)

	require.Len(t, headings, 3)
	require.Equal(t, "getting-started", headings[0].ID)
	require.Equal(t, "Getting started", headings[0].Title)
	require.Len(t, headings[0].Children, 1)
	require.Equal(t, "Install the CLI", headings[0].Children[0].Title)
	require.Equal(t, 3, headings[0].Children[0].Level)
	require.Equal(t, "Configure docsite", headings[1].Title)
	require.Equal(t, "custom-id", headings[2].ID)
}

func TestCollectWithoutAutoIDs(t *testing.T) {
	t.Parallel()

	headings := Parse(goldmark.New().Parser(), []byte("## Hello World\n"))
	require.Len(t, headings, 1)
	require.Equal(t, "hello-world", headings[0].ID)
}
