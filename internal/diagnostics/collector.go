package diagnostics

import (
	"errors"
	"sync"

	"github.com/HicaroD/basicc/internal/ast"
)

var (
	COMPILER_ERROR_FOUND = errors.New("compiler error found")
)

// Collector is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	Diags   []Diag
	printer *Printer
}

// New returns a collector that only records.
func New() *Collector {
	return &Collector{
		Diags: nil,
	}
}

// NewWithPrinter returns a collector that also prints every diagnostic as it
// is saved.
func NewWithPrinter(printer *Printer) *Collector {
	return &Collector{printer: printer}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	if collector.printer != nil {
		collector.printer.Print(diag)
	}
	collector.Diags = append(collector.Diags, diag)
}

// Reporter binds a kind and a level, for checks that only know about nodes
// and messages.
func (collector *Collector) Reporter(kind Kind, level Level) Reporter {
	return func(node ast.Node, message string) {
		collector.ReportAndSave(Diag{Kind: kind, Level: level, Node: node, Message: message})
	}
}

func (collector *Collector) All() []Diag {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	out := make([]Diag, len(collector.Diags))
	copy(out, collector.Diags)
	return out
}

func (collector *Collector) Errors() []Diag   { return collector.filter(ERROR) }
func (collector *Collector) Warnings() []Diag { return collector.filter(WARNING) }

func (collector *Collector) HasErrors() bool { return len(collector.Errors()) > 0 }

// Err returns COMPILER_ERROR_FOUND if any error-level diagnostic was saved.
func (collector *Collector) Err() error {
	if collector.HasErrors() {
		return COMPILER_ERROR_FOUND
	}
	return nil
}

func (collector *Collector) filter(level Level) []Diag {
	var out []Diag
	for _, diag := range collector.All() {
		if diag.Level == level {
			out = append(out, diag)
		}
	}
	return out
}
