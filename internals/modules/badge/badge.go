package badge

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

type Style string

const (
	Flat        Style = "flat"
	FlatSquare  Style = "flat-square"
	Plastic     Style = "plastic"
	ForTheBadge Style = "for-the-badge"
)

const (
	DefaultLabelColor = "#333"
	DefaultColor      = "#9f9f9f"
)

// ParseStyle maps a query value to a Style. Unknown values are Flat.
func ParseStyle(s string) Style {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case Flat, FlatSquare, Plastic, ForTheBadge:
		return st
	default:
		return Flat
	}
}

type Options struct {
	Label      string
	Message    string
	Color      string
	LabelColor string
	Style      Style
}

type geometry struct {
	height     int
	radius     int
	fontSize   int
	charWidth  int
	padding    int
	textY      int
	spacing    string
	gradient   string
	upperCased bool
}

var geometries = map[Style]geometry{
	Flat:        {height: 20, radius: 3, fontSize: 11, charWidth: 7, padding: 10, textY: 14, gradient: flatGradient},
	FlatSquare:  {height: 20, radius: 0, fontSize: 11, charWidth: 7, padding: 10, textY: 14},
	Plastic:     {height: 18, radius: 4, fontSize: 11, charWidth: 7, padding: 10, textY: 13, gradient: plasticGradient},
	ForTheBadge: {height: 28, radius: 0, fontSize: 10, charWidth: 9, padding: 24, textY: 18, spacing: "1.25", upperCased: true},
}

const flatGradient = `<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>`

const plasticGradient = `<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#fff" stop-opacity=".7"/><stop offset=".1" stop-color="#aaa" stop-opacity=".1"/><stop offset=".9" stop-opacity=".3"/><stop offset="1" stop-opacity=".5"/></linearGradient>`

// Render produces a shields.io style SVG badge. It never fails: invalid
// colors and unknown styles fall back to defaults.
func Render(opts Options) []byte {
	style := ParseStyle(string(opts.Style))
	g := geometries[style]

	label, message := opts.Label, opts.Message
	if g.upperCased {
		label, message = strings.ToUpper(label), strings.ToUpper(message)
	}

	labelColor := NormalizeColor(opts.LabelColor, DefaultLabelColor)
	color := NormalizeColor(opts.Color, DefaultColor)

	labelWidth := utf8.RuneCountInString(label)*g.charWidth + g.padding
	messageWidth := utf8.RuneCountInString(message)*g.charWidth + g.padding
	total := labelWidth + messageWidth

	label, message = html.EscapeString(label), html.EscapeString(message)
	title := label + ": " + message

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img" aria-label="%s">`, total, g.height, title)
	fmt.Fprintf(&b, `<title>%s</title>`, title)
	b.WriteString(g.gradient)
	fmt.Fprintf(&b, `<clipPath id="r"><rect width="%d" height="%d" rx="%d" fill="#fff"/></clipPath>`, total, g.height, g.radius)
	b.WriteString(`<g clip-path="url(#r)">`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, labelWidth, g.height, labelColor)
	fmt.Fprintf(&b, `<rect x="%d" width="%d" height="%d" fill="%s"/>`, labelWidth, messageWidth, g.height, color)
	if g.gradient != "" {
		fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#s)"/>`, total, g.height)
	}
	b.WriteString(`</g>`)

	fmt.Fprintf(&b, `<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="%d"`, g.fontSize)
	if g.spacing != "" {
		fmt.Fprintf(&b, ` letter-spacing="%s" font-weight="bold"`, g.spacing)
	}
	b.WriteString(`>`)
	writeText(&b, g, labelWidth/2, label)
	writeText(&b, g, labelWidth+messageWidth/2, message)
	b.WriteString(`</g></svg>`)

	return b.Bytes()
}

func writeText(b *bytes.Buffer, g geometry, x int, text string) {
	// drop shadow is only drawn by the rounded styles
	if g.gradient != "" {
		fmt.Fprintf(b, `<text x="%d" y="%d" fill="#010101" fill-opacity=".3">%s</text>`, x, g.textY+1, text)
	}
	fmt.Fprintf(b, `<text x="%d" y="%d">%s</text>`, x, g.textY, text)
}
