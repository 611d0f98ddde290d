package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/trace"
)

var ErrUnknownAlgorithm = errors.New("algorithms: unknown algorithm")

// SortFunc sorts the recorder's array in place through its primitives.
type SortFunc func(r *Recorder)

type entry struct {
	info Info
	sort SortFunc
}

type Registry struct {
	algorithms map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]entry)}

	r.Register("bubble", builtinInfo["bubble"], bubbleSort)
	r.Register("cocktail", builtinInfo["cocktail"], cocktailSort)
	r.Register("selection", builtinInfo["selection"], selectionSort)
	r.Register("insertion", builtinInfo["insertion"], insertionSort)
	r.Register("shell", builtinInfo["shell"], shellSort)
	r.Register("merge", builtinInfo["merge"], mergeSort)
	r.Register("quick", builtinInfo["quick"], quickSort)
	r.Register("heap", builtinInfo["heap"], heapSort)

	return r
}

func (r *Registry) Register(name string, info Info, fn SortFunc) {
	if info.Color == "" {
		info.Color = DefaultColor
	}
	if info.Name == "" {
		info.Name = name
	}
	r.algorithms[name] = entry{info: info, sort: fn}
}

func (r *Registry) Info(name string) (Info, error) {
	e, ok := r.algorithms[name]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return e.info, nil
}

// Generate runs the named algorithm over a copy of values and returns
// its trace. values is not modified.
func (r *Registry) Generate(name string, values []int) (trace.Trace, error) {
	e, ok := r.algorithms[name]
	if !ok {
		return trace.Trace{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	rec := NewRecorder(values)
	e.sort(rec)
	return rec.trace(name, values), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func Generate(name string, values []int) (trace.Trace, error) {
	return defaultRegistry.Generate(name, values)
}

func Lookup(name string) (Info, error) { return defaultRegistry.Info(name) }

func Names() []string { return defaultRegistry.Names() }
