// Package demo holds the example component trees served by the CLI.
package demo

import (
	"sort"
	"strings"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// Demo is a named root component.
type Demo struct {
	Name        string
	Description string
	Root        *runtime.Component
	Props       vdom.Props
}

var demos = map[string]Demo{}

func register(d Demo) {
	demos[d.Name] = d
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, error) {
	d, ok := demos[name]
	if !ok {
		return Demo{}, errors.New("E401").
			WithDetail("unknown demo " + name).
			WithSuggestion("Available demos: " + strings.Join(Names(), ", "))
	}
	return d, nil
}

// All returns every demo sorted by name.
func All() []Demo {
	out := make([]Demo, 0, len(demos))
	for _, d := range demos {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the demo names sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}
