// Package view turns a render.Model into something a person can look at.
//
//   - svg.go: DonutSVG draws one ring; SVG lays the whole card out as a
//     standalone image (grid of columns, title, text blocks, placeholders).
//   - html.go: HTML writes the card page with html/template, mirroring the
//     Lovelace card markup and stylesheet.
//   - terminal.go: Terminal draws ring gauges with lipgloss for the CLI and
//     the TUI.
//
// A donut icon is an id for a host icon set (for example "mdi:gauge"). SVG
// and HTML carry it as a data-icon attribute and draw no glyph; the terminal
// view has no icon set and leaves it out.
//
// Renderers never change the model; anything they need beyond it (fonts,
// spacing, colors for chrome) is a constant in this package.
package view
