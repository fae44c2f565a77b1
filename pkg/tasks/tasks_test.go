package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

const sampleTask = `
name: cake-failure-escalation
description: Anniversary cake mishap requiring a manager escalation.
seed:
  staff_role: Server
  customer_mood: upset
script:
  - tool: record_service_incident
    args:
      category: celebration_failure
      severity: major
      description: ice cream cake melted in storage
  - tool: escalate_with_solution
    args:
      escalate_to: manager
      reason: cake storage failure
      recommended_discount_percent: 50
      recommended_actions: [offer_replacement_cake, comp_dessert]
scoring:
  ordered: true
  required_actions:
    - tool: escalate_with_solution
      must_succeed: true
  assertions:
    - name: escalation
      args:
        to: manager
        discount_percent: 50
`

func writeTask(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileSingleTask(t *testing.T) {
	path := writeTask(t, t.TempDir(), "task.yaml", sampleTask)
	list, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("loaded %d tasks", len(list))
	}

	task := list[0]
	if task.Name != "cake-failure-escalation" {
		t.Errorf("name = %q", task.Name)
	}
	if len(task.Script) != 2 {
		t.Errorf("script length = %d", len(task.Script))
	}
	if task.Script[1].Args["recommended_discount_percent"] != 50 {
		t.Errorf("args = %v", task.Script[1].Args)
	}
	if !task.Scoring.Ordered || len(task.Scoring.Assertions) != 1 {
		t.Errorf("scoring = %+v", task.Scoring)
	}
}

func TestBuildSeedMergesOverlay(t *testing.T) {
	path := writeTask(t, t.TempDir(), "task.yaml", sampleTask)
	list, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	seed := list[0].BuildSeed()
	if seed.CustomerMood != "upset" {
		t.Errorf("CustomerMood = %q", seed.CustomerMood)
	}
	// Defaults survive under the overlay.
	if len(seed.Tables) == 0 || seed.Info.Name != "Berkeley Hot Pot" {
		t.Error("overlay dropped default dataset sections")
	}
	store, err := seed.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if store.Role != restaurant.RoleServer {
		t.Errorf("Role = %s", store.Role)
	}
}

func TestValidateRejectsDefects(t *testing.T) {
	cases := []struct {
		name string
		task Task
	}{
		{"no name", Task{Script: []tools.Request{{Tool: "get_restaurant_info"}}}},
		{"empty script", Task{Name: "t"}},
		{"nameless call", Task{Name: "t", Script: []tools.Request{{}}}},
		{"negative timeout", Task{Name: "t", Script: []tools.Request{{Tool: "get_restaurant_info"}}, TimeoutSeconds: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.task.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadDirSortsAndRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeTask(t, dir, "b.yaml", sampleTask)
	second := `
name: second-task
script:
  - tool: get_restaurant_info
`
	writeTask(t, dir, "a.yaml", second)

	list, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(list) != 2 || list[0].Name != "second-task" {
		t.Fatalf("order = %v", []string{list[0].Name, list[1].Name})
	}

	writeTask(t, dir, "c.yaml", sampleTask)
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("duplicate task name accepted")
	}
}

func TestLoadFileRejectsInvalidTask(t *testing.T) {
	path := writeTask(t, t.TempDir(), "bad.yaml", "name: no-script\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("task without script accepted")
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeTask(t, dir, "a.yaml", sampleTask)

	w, err := NewWatcher(dir, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	reloaded := make(chan int, 4)
	go func() {
		_ = w.Watch(ctx, func(list []Task) {
			reloaded <- len(list)
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeTask(t, dir, "new.yaml", `
name: new-task
script:
  - tool: get_restaurant_info
`)

	select {
	case n := <-reloaded:
		if n != 2 {
			t.Errorf("reloaded %d tasks, want 2", n)
		}
	case <-ctx.Done():
		t.Fatal("watcher never reloaded")
	}
}
