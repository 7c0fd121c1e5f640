package tool

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/calclogic/core/overview"
)

func TestCatalog_AddGetHas(t *testing.T) {
	catalog := NewCatalog(NewTool("Square", square))

	if catalog.Size() != 1 {
		t.Errorf("Size() = %d, want 1", catalog.Size())
	}
	for _, name := range []string{"square", "SQUARE"} {
		if !catalog.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}

	got, ok := catalog.Get("sQuArE")
	if !ok {
		t.Fatal("Get() did not find the tool")
	}
	if got.ToolInfo().Name != "Square" {
		t.Errorf("Name = %q, want Square", got.ToolInfo().Name)
	}

	if _, ok := catalog.Get("missing"); ok {
		t.Error("Get(missing) found a tool")
	}
}

func TestCatalog_ReplaceSameName(t *testing.T) {
	catalog := NewCatalog(NewTool("square", square))
	catalog.AddTools(NewTool("SQUARE", square, WithDescription("second")))

	if catalog.Size() != 1 {
		t.Errorf("Size() = %d, want 1", catalog.Size())
	}
	got, _ := catalog.Get("square")
	if got.ToolInfo().Description != "second" {
		t.Errorf("Description = %q, want second", got.ToolInfo().Description)
	}
}

func TestCatalog_Remove(t *testing.T) {
	catalog := NewCatalog(NewTool("square", square))

	if !catalog.Remove("Square") {
		t.Error("Remove(Square) = false")
	}
	if catalog.Remove("square") {
		t.Error("second Remove(square) = true")
	}
	if catalog.Size() != 0 {
		t.Errorf("Size() = %d, want 0", catalog.Size())
	}
}

func TestCatalog_NamesAndInfos(t *testing.T) {
	catalog := NewCatalog(NewTool("b", square), NewTool("A", square), NewTool("c", failing))

	if got, want := catalog.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	infos := catalog.Infos()
	if len(infos) != 3 {
		t.Fatalf("Infos() returned %d entries, want 3", len(infos))
	}
	if infos[0].Name != "A" || infos[2].Name != "c" {
		t.Errorf("Infos() order = %s, %s, %s", infos[0].Name, infos[1].Name, infos[2].Name)
	}
}

func TestCatalog_Call(t *testing.T) {
	catalog := NewCatalog(NewTool("square", square))

	out, err := catalog.Call(context.Background(), "Square", `{"value": 5}`)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if out != `{"result":25}` {
		t.Errorf("Call() = %s", out)
	}

	_, err = catalog.Call(context.Background(), "cube", `{"value": 5}`)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Call(cube) error = %v, want ErrToolNotFound", err)
	}
	if !strings.Contains(err.Error(), `"cube"`) {
		t.Errorf("error %q does not name the tool", err)
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	catalog := NewCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			catalog.AddTools(NewTool(fmt.Sprintf("tool-%d", i), square))
		}(i)
		go func() {
			defer wg.Done()
			_ = catalog.Names()
			_, _ = catalog.Call(context.Background(), "tool-0", `{"value": 2}`)
		}()
	}
	wg.Wait()

	if catalog.Size() != 20 {
		t.Errorf("Size() = %d, want 20", catalog.Size())
	}
}

func TestCatalog_CallRecordsOverview(t *testing.T) {
	catalog := NewCatalog(NewTool("square", square), NewTool("failing", failing))
	ov := overview.New()
	ctx := ov.ToContext(context.Background())

	if _, err := catalog.Call(ctx, "square", `{"value": 3}`); err != nil {
		t.Fatalf("Call(square) error = %v", err)
	}
	if _, err := catalog.Call(ctx, "failing", `{"value": 3}`); err == nil {
		t.Fatal("Call(failing) succeeded")
	}
	if _, err := catalog.Call(ctx, "missing", `{}`); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Call(missing) error = %v", err)
	}

	history := ov.History()
	if len(history) != 2 {
		t.Fatalf("History() has %d entries, want 2", len(history))
	}
	if history[0].Tool != "square" || history[0].Output != `{"result":9}` {
		t.Errorf("first entry = %+v", history[0])
	}
	if history[1].Tool != "failing" || history[1].Error == "" {
		t.Errorf("second entry = %+v", history[1])
	}
	if ov.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", ov.Errors())
	}
}
