package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leofalp/calclogic/core/overview"
	"github.com/leofalp/calclogic/internal/utils"
)

// ErrToolNotFound is returned by [Catalog.Call] for an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

// Catalog is a thread-safe registry of tools keyed by lower-cased name.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates a catalog holding tools.
func NewCatalog(tools ...GenericTool) *Catalog {
	catalog := &Catalog{
		tools: make(map[string]GenericTool, len(tools)),
	}
	catalog.AddTools(tools...)
	return catalog
}

// AddTools registers tools under their ToolInfo().Name. A tool with the same
// name, ignoring case, is replaced.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[strings.ToLower(name)]
	return t, ok
}

// Has checks if a tool with the given name exists (case-insensitive).
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove removes a tool by name and reports whether it was present.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := c.tools[key]; !ok {
		return false
	}
	delete(c.tools, key)
	return true
}

// Names returns the registered (lower-cased) names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns the ToolInfo of every tool, ordered by name.
func (c *Catalog) Infos() []Info {
	names := c.Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		if t, ok := c.Get(name); ok {
			infos = append(infos, t.ToolInfo())
		}
	}
	return infos
}

// Size returns the number of tools in the catalog.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Call looks up name and invokes the tool with inputJSON. The call is
// recorded in the overview.Overview carried by ctx, if any.
func (c *Catalog) Call(ctx context.Context, name, inputJSON string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}

	timer := utils.NewTimer()
	output, err := t.Call(ctx, inputJSON)
	timer.Stop()

	if ov := overview.FromContext(ctx); ov != nil {
		ov.AddToolCall(overview.ToolCall{
			Tool:     t.ToolInfo().Name,
			Input:    inputJSON,
			Output:   output,
			Duration: timer.GetDuration(),
		}, t.GetMetrics(), err)
	}
	return output, err
}
