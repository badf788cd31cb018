// Package output renders the tables, info rows and diagnostics printed by
// the commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"vboxctl/internal/vminfo"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	listFormat = "%-30s %-8s %s\n"
	infoFormat = "%-16s%s\n"
)

var (
	bold      = color.New(color.Bold)
	errPrefix = color.New(color.FgRed, color.Bold)
)

// Field is one label/value row of the info view.
type Field struct {
	Label string
	Value string
}

type Printer struct {
	out io.Writer
	err io.Writer
}

func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) ListHeader() {
	bold.Fprintf(p.out, listFormat, "Name", "State", "OS Type")
}

func (p *Printer) ListRow(name, state, osType string) {
	fmt.Fprintf(p.out, listFormat, name, state, osType)
}

func (p *Printer) Header(title string) {
	bold.Fprintln(p.out, title)
}

func (p *Printer) Fields(fields []Field) {
	for _, f := range fields {
		fmt.Fprintf(p.out, infoFormat, f.Label, f.Value)
	}
}

func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Error prints the single diagnostic line of a failed command.
func (p *Printer) Error(err error) {
	errPrefix.Fprint(p.err, "Error:")
	fmt.Fprintf(p.err, " %v\n", err)
}

// Record dumps every key of a machine record as yaml or json, keeping the
// order VBoxManage printed them in for yaml.
func (p *Printer) Record(record *vminfo.Record, format string) error {
	switch format {
	case "yaml", "yml":
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range record.Keys() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: record.Get(k)},
			)
		}
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record.Map()); err != nil {
			return errors.Wrap(err, "encoding json")
		}
		return nil
	default:
		return errors.Errorf("unknown output format %q, use text, yaml or json", format)
	}
}
