package tool

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func namedTool(t *testing.T, name string) *Tool[struct{}, string] {
	t.Helper()
	tool, err := NewTool(name, func(context.Context, struct{}) (string, error) { return name, nil })
	if err != nil {
		t.Fatalf("NewTool: %v", err)
	}
	return tool
}

func TestCatalog_CaseInsensitiveLookup(t *testing.T) {
	catalog := NewCatalogWithTools(namedTool(t, "WebFetch"))

	for _, name := range []string{"webfetch", "WEBFETCH", "WebFetch"} {
		if _, ok := catalog.Get(name); !ok {
			t.Errorf("expected %q to resolve", name)
		}
	}
	if catalog.Has("missing") {
		t.Error("unexpected tool")
	}
	if _, ok := catalog.Tools()["webfetch"]; !ok {
		t.Error("expected lowercase key in Tools()")
	}
}

func TestCatalog_AddReplaceRemove(t *testing.T) {
	catalog := NewCatalog()
	first := namedTool(t, "clock")
	second := namedTool(t, "Clock")

	catalog.AddTools(first)
	catalog.AddTools(second)
	if catalog.Size() != 1 {
		t.Fatalf("expected replacement, got size %d", catalog.Size())
	}
	if got, _ := catalog.Get("clock"); got != second {
		t.Error("expected the later tool to win")
	}

	if !catalog.Remove("CLOCK") || catalog.Remove("clock") {
		t.Error("expected exactly one successful removal")
	}
}

func TestCatalog_ToolsReturnsCopy(t *testing.T) {
	catalog := NewCatalogWithTools(namedTool(t, "a"))
	tools := catalog.Tools()
	delete(tools, "a")
	if catalog.Size() != 1 {
		t.Error("mutating Tools() affected the catalog")
	}
}

func TestCatalog_CloneAndMerge(t *testing.T) {
	base := NewCatalogWithTools(namedTool(t, "a"))
	clone := base.Clone()
	clone.AddTools(namedTool(t, "b"))
	if base.Size() != 1 || clone.Size() != 2 {
		t.Errorf("clone is not independent: base=%d clone=%d", base.Size(), clone.Size())
	}

	base.Merge(clone)
	base.Merge(nil)
	base.Merge(base)
	if base.Size() != 2 {
		t.Errorf("expected merged size 2, got %d", base.Size())
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	catalog := NewCatalog()
	tools := make([]*Tool[struct{}, string], 20)
	for i := range tools {
		tools[i] = namedTool(t, fmt.Sprintf("tool-%d", i))
	}

	var wg sync.WaitGroup
	for _, tool := range tools {
		wg.Add(1)
		go func() {
			defer wg.Done()
			catalog.AddTools(tool)
			catalog.Get(tool.Name)
			catalog.Tools()
		}()
	}
	wg.Wait()

	if catalog.Size() != 20 {
		t.Errorf("expected 20 tools, got %d", catalog.Size())
	}
}
