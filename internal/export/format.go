// Package export renders an inventory Report for consumers: fact systems
// (JSON/YAML), node_exporter's textfile collector (Prometheus text) and
// people (table).
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nickromney/certfacts/internal/inventory"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatProm  Format = "prom"
	FormatTable Format = "table"
)

// Formats lists the accepted values of --format.
var Formats = []Format{FormatJSON, FormatYAML, FormatProm, FormatTable}

// ParseFormat accepts a format name (case-insensitive, "yml" and
// "prometheus" as aliases).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "prom", "prometheus":
		return FormatProm, nil
	case "table":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml, prom or table)", s)
	}
}

// Write renders report to w.
func Write(w io.Writer, report inventory.Report, f Format, opt TableOptions) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatProm:
		return WriteProm(w, report)
	case FormatTable:
		_, err := io.WriteString(w, RenderTable(report, opt)+"\n")
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Render returns the encoded report.
func Render(report inventory.Report, f Format, opt TableOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, report, f, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w io.Writer, report inventory.Report) error {
	if report == nil {
		report = inventory.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeYAML(w io.Writer, report inventory.Report) error {
	if report == nil {
		report = inventory.Report{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
