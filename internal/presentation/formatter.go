// Package presentation formats registry contents for command output.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatSnapshot formats a snapshot as JSON
func (f *Formatter) FormatSnapshot(snap SnapshotDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// FormatStyleTable writes one line per style: name, declared states and tags.
func (f *Formatter) FormatStyleTable(styles []StyleDTO) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSTATES\tTAGS")
	for _, s := range styles {
		tags := make([]string, len(s.Tags))
		for i, tag := range s.Tags {
			tags[i] = tag.Name
		}
		tagList := strings.Join(tags, ",")
		if tagList == "" {
			tagList = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, strings.Join(s.States, ","), tagList)
	}
	return tw.Flush()
}

// FormatColors formats colors as JSON
func (f *Formatter) FormatColors(colors []ColorDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(colors)
}

// FormatColorTable writes one line per color: name, hex and source. Unavailable
// colors show "-" for hex.
func (f *Formatter) FormatColorTable(colors []ColorDTO) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tHEX\tSOURCE")
	for _, c := range colors {
		hex, source := c.Hex, c.Source
		if !c.Available {
			hex, source = "-", source+" (disabled)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, hex, source)
	}
	return tw.Flush()
}
