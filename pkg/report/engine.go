package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Template names inside the embedded bundle.
const (
	textTemplate = "report.text.tpl"
	htmlTemplate = "report.html.tpl"
)

// Engine renders report templates out of a template filesystem, caching
// parsed templates across renders. The zero value is not usable; construct
// with NewEngine.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

// NewEngine builds an engine over a template filesystem, normally
// TemplatesFS().
func NewEngine(fsys fs.FS) *Engine {
	return &Engine{
		set:   pongo2.NewSet("pvsim-report", pongo2.NewFSLoader(fsys)),
		cache: make(map[string]*pongo2.Template),
	}
}

// Render executes the named template against data. Struct data goes through
// a JSON round trip first so templates see plain maps and slices keyed by
// the struct's JSON tags.
func (e *Engine) Render(name string, data any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("report: engine is nil")
	}

	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}

	ctx, err := templateContext(data)
	if err != nil {
		return "", fmt.Errorf("report: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("report: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

func templateContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return pongo2.Context(out), nil
}

var (
	engineOnce   sync.Once
	sharedEngine *Engine
)

func defaultEngine() *Engine {
	engineOnce.Do(func() {
		sharedEngine = NewEngine(TemplatesFS())
	})
	return sharedEngine
}
