// Package changelog extracts release notes from a keep-a-changelog style
// Markdown file, where each version is a level-2 heading.
package changelog

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoSections indicates the changelog contains no version headings.
var ErrNoSections = errors.New("changelog has no version sections")

// Section is one version entry of the changelog.
type Section struct {
	Title string // heading text, e.g. "1.2.0 - 2026-08-01"
	Body  string // raw Markdown between this heading and the next version
}

// Latest returns the first (newest) version section of the changelog source.
func Latest(source []byte) (*Section, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var headings []*gmast.Heading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && h.Level == 2 {
			headings = append(headings, h)
		}
	}
	if len(headings) == 0 {
		return nil, ErrNoSections
	}

	first := headings[0]
	bodyStart := headingLineEnd(source, first)
	bodyEnd := len(source)
	if len(headings) > 1 {
		bodyEnd = headingLineStart(source, headings[1])
	}

	return &Section{
		Title: headingText(source, first),
		Body:  strings.TrimSpace(string(source[bodyStart:bodyEnd])),
	}, nil
}

// headingText collects the plain text content of a heading node.
func headingText(source []byte, h *gmast.Heading) string {
	var buf bytes.Buffer
	_ = gmast.Walk(h, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*gmast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// headingLineStart returns the byte offset of the start of the heading's line
// (before the "##" marker). Goldmark segments cover only the heading text.
func headingLineStart(source []byte, h *gmast.Heading) int {
	if h.Lines().Len() == 0 {
		return 0
	}
	start := h.Lines().At(0).Start
	if idx := bytes.LastIndexByte(source[:start], '\n'); idx >= 0 {
		return idx + 1
	}
	return 0
}

// headingLineEnd returns the byte offset just past the heading's line.
func headingLineEnd(source []byte, h *gmast.Heading) int {
	if h.Lines().Len() == 0 {
		return len(source)
	}
	stop := h.Lines().At(h.Lines().Len() - 1).Stop
	if idx := bytes.IndexByte(source[stop:], '\n'); idx >= 0 {
		return stop + idx + 1
	}
	return len(source)
}
