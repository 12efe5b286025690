package component

import (
	"context"
	"errors"
	"testing"
)

type testComponent struct {
	name     string
	started  bool
	stopped  bool
	startErr error
	stopErr  error
	order    *[]string
}

func (c *testComponent) Name() string { return c.name }

func (c *testComponent) Start(_ context.Context) error {
	if c.startErr != nil {
		return c.startErr
	}
	c.started = true
	if c.order != nil {
		*c.order = append(*c.order, "start:"+c.name)
	}
	return nil
}

func (c *testComponent) Stop(_ context.Context) error {
	if c.stopErr != nil {
		return c.stopErr
	}
	c.stopped = true
	if c.order != nil {
		*c.order = append(*c.order, "stop:"+c.name)
	}
	return nil
}

func (c *testComponent) Health(_ context.Context) Health {
	status := StatusUnhealthy
	if c.started && !c.stopped {
		status = StatusHealthy
	}
	return Health{Name: c.name, Status: status}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&testComponent{name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&testComponent{name: "a"}); err == nil {
		t.Fatal("expected an error for a duplicate name")
	}
}

func TestRegistry_StartStopOrder(t *testing.T) {
	var order []string
	r := NewRegistry()
	r.Register(&testComponent{name: "first", order: &order})
	r.Register(&testComponent{name: "second", order: &order})

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start:first", "start:second", "stop:second", "stop:first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestRegistry_StartAllAbortsOnFailure(t *testing.T) {
	r := NewRegistry()
	ok := &testComponent{name: "ok"}
	r.Register(ok)
	r.Register(&testComponent{name: "broken", startErr: errors.New("boom")})
	after := &testComponent{name: "after"}
	r.Register(after)

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if after.started {
		t.Error("components after the failure must not start")
	}
	if !ok.started {
		t.Error("components before the failure stay started")
	}
}

func TestRegistry_StopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	fails := &testComponent{name: "fails", stopErr: errors.New("stuck")}
	fine := &testComponent{name: "fine"}
	r.Register(fails)
	r.Register(fine)

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.StopAll(ctx); err == nil {
		t.Fatal("expected an aggregated stop error")
	}
	if !fine.stopped {
		t.Error("a stop failure must not skip the remaining components")
	}
}

func TestRegistry_GetAndAll(t *testing.T) {
	r := NewRegistry()
	c := &testComponent{name: "lookup"}
	r.Register(c)

	if got := r.Get("lookup"); got != Component(c) {
		t.Error("Get should return the registered component")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("Get on an unknown name returns nil")
	}
	if got := r.All(); len(got) != 1 {
		t.Errorf("All returned %d components, want 1", len(got))
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&testComponent{name: "a"})
	r.Register(&testComponent{name: "b"})

	ctx := context.Background()
	r.StartAll(ctx)

	results := r.HealthAll(ctx)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, h := range results {
		if h.Status != StatusHealthy {
			t.Errorf("%s status = %s, want healthy", h.Name, h.Status)
		}
	}
}
