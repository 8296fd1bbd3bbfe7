package site

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestRenderFrontMatterAndTOC(t *testing.T) {
	t.Parallel()

	src := []byte(`---
title: Overview
description: What the protocol is.
---

Intro paragraph.

## Getting started

Read the [FAQ](./faq.md) and the [swap guide](../guides/swap.md#fees).

### Networks

## Core concepts
`)
	page, err := NewRenderer("").Render(src, "docs/introduction/overview.md")
	require.NoError(t, err)

	require.Equal(t, "Overview", page.Title)
	require.Equal(t, "What the protocol is.", page.Description)
	require.Len(t, page.TOC, 2)
	require.Equal(t, "getting-started", page.TOC[0].ID)
	require.Equal(t, "networks", page.TOC[0].Children[0].ID)
	require.Equal(t, "core-concepts", page.TOC[1].ID)

	require.Contains(t, page.HTML, `<h2 id="getting-started">Getting started</h2>`)
	require.Contains(t, page.HTML, `href="/docs/introduction/faq"`)
	require.Contains(t, page.HTML, `href="/docs/guides/swap#fees"`)
	require.NotContains(t, page.HTML, "---")
	require.Contains(t, page.Text, "Intro paragraph.")
}

func TestRenderTitleFromH1(t *testing.T) {
	t.Parallel()

	page, err := NewRenderer("").Render([]byte("# FAQ\n\n## What is it?\n"), "docs/introduction/faq.md")
	require.NoError(t, err)
	require.Equal(t, "FAQ", page.Title)
	require.NotContains(t, page.HTML, "<h1")
	require.Len(t, page.TOC, 1)
}

func TestRenderTitleFallback(t *testing.T) {
	t.Parallel()

	r := NewRenderer("")
	page, err := r.Render([]byte("Just text.\n"), "docs/market-making/market-making-opportunities.md")
	require.NoError(t, err)
	require.Equal(t, "Market Making Opportunities", page.Title)
	require.Empty(t, page.TOC)

	page, err = r.Render([]byte("Just text.\n"), "docs/api/orders/index.md")
	require.NoError(t, err)
	require.Equal(t, "Orders", page.Title)
}

func TestRenderTitleFallbackNonASCII(t *testing.T) {
	t.Parallel()

	r := NewRenderer("")
	page, err := r.Render([]byte("Just text.\n"), "docs/élan-vital.md")
	require.NoError(t, err)
	require.Equal(t, "Élan Vital", page.Title)
	require.True(t, utf8.ValidString(page.Title))

	require.Equal(t, "Über Ωmega", formatName("über_ωmega"))
}

func TestRenderInvalidFrontMatter(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer("").Render([]byte("---\ntitle: [unclosed\n---\nbody\n"), "bad.md")
	require.Error(t, err)
}

func TestRenderHighlightsCode(t *testing.T) {
	t.Parallel()

	src := "## Example\n\n```go\nfmt.Println(\"hi\")\n```\n"
	page, err := NewRenderer("github").Render([]byte(src), "docs/example.md")
	require.NoError(t, err)
	require.Contains(t, page.HTML, "<pre")
	require.True(t, strings.Contains(page.HTML, "style=") || strings.Contains(page.HTML, "class="))
	require.NotContains(t, page.Text, "Println")
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		wantTitle string
		wantBody  string
	}{
		{"none", "# Hello\n", "", "# Hello\n"},
		{"basic", "---\ntitle: A\n---\nbody\n", "A", "body\n"},
		{"empty", "---\n---\nbody\n", "", "body\n"},
		{"crlf", "---\r\ntitle: B\r\n---\r\nbody\r\n", "B", "body\r\n"},
		{"unterminated", "---\ntitle: C\n", "", "---\ntitle: C\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := splitFrontMatter([]byte(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.wantTitle, fm.Title)
			require.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dest   string
		want   string
		wantOK bool
	}{
		{"./faq.md", "/docs/introduction/faq", true},
		{"faq.md#top", "/docs/introduction/faq#top", true},
		{"../api/orders/index.md", "/docs/api/orders", true},
		{"/docs/guides/swap.md", "/docs/guides/swap", true},
		{"../../../outside.md", "", false},
		{"https://example.com/readme.md", "", false},
		{"#section", "", false},
		{"/docs/guides/swap", "", false},
		{"image.png", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveLink("docs/introduction/overview.md", tt.dest)
		require.Equal(t, tt.wantOK, ok, tt.dest)
		require.Equal(t, tt.want, got, tt.dest)
	}
}
