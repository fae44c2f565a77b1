//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/binleiwang/tau2-bench/pkg/results"
	"github.com/binleiwang/tau2-bench/pkg/scoring"
	"github.com/binleiwang/tau2-bench/pkg/session"
	"github.com/binleiwang/tau2-bench/pkg/tasks"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

const escalationTask = `
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
    - tool: record_service_incident
    - tool: escalate_with_solution
      must_succeed: true
  assertions:
    - name: escalation
      args:
        to: manager
        discount_percent: 50
`

const discountTask = `
name: server-discount-denied
description: A server attempts a discount above their authority ceiling.
seed:
  staff_role: Server
  orders:
    - id: ORD_seed0001
      table_id: A1
      party_size: 2
      subtotal: 40
      sauce_bar_charge: 4
      status: placed
script:
  - tool: get_current_staff_authority
  - tool: apply_discount
    args:
      discount_type: percentage
      value: 25
      reason: birthday
scoring:
  assertions:
    - name: no_discount
`

// TestFullBenchmarkRun drives the whole pipeline: load tasks from disk, run
// sessions in parallel, score them, and persist records.
func TestFullBenchmarkRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dir := t.TempDir()
	for name, doc := range map[string]string{
		"escalation.yaml": escalationTask,
		"discount.yaml":   discountTask,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	taskList, err := tasks.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(taskList) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(taskList))
	}

	registry := tools.NewRegistry()
	runner := session.NewRunner(registry, 2)

	jobs := make([]session.Job, len(taskList))
	for i, task := range taskList {
		jobs[i] = session.Job{
			Name:     task.Name,
			Seed:     task.BuildSeed(),
			Requests: task.Script,
			Timeout:  task.Timeout(),
		}
	}

	ctx := context.Background()
	jobResults := runner.Run(ctx, jobs)

	evaluator := scoring.NewEvaluator()
	store := results.NewMemoryStore()
	defer store.Close()

	for i, jr := range jobResults {
		if jr.Err != nil {
			t.Fatalf("job %s failed: %v", jr.Name, jr.Err)
		}
		report := evaluator.Evaluate(taskList[i].Scoring, jr.Result)
		if !report.Pass {
			t.Errorf("task %s did not pass: %+v", jr.Name, report.Checks)
		}
		if report.Reward != 1 {
			t.Errorf("task %s reward = %v, want 1", jr.Name, report.Reward)
		}
		if err := store.Save(ctx, results.NewRecord(jr.Name, jr.Result, report)); err != nil {
			t.Fatalf("Save: %v", err)
		}

		// The discount scenario exists to exercise the authority ceiling:
		// the over-limit call must be rejected with the authority code.
		if jr.Name == "server-discount-denied" {
			var seen bool
			for _, rec := range jr.Result.Records {
				if rec.Tool != "apply_discount" {
					continue
				}
				seen = true
				if rec.Status != tools.StatusAuthorityExceeded || rec.Code != tools.CodeAuthorityExceeded {
					t.Errorf("apply_discount = %s/%s, want %s/%s",
						rec.Status, rec.Code, tools.StatusAuthorityExceeded, tools.CodeAuthorityExceeded)
				}
			}
			if !seen {
				t.Error("apply_discount call missing from the log")
			}
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("stored %d records, want 2", count)
	}
}

// TestRunIsDeterministic reruns the same task and expects identical scores
// and identical call logs.
func TestRunIsDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "escalation.yaml"), []byte(escalationTask), 0o644); err != nil {
		t.Fatal(err)
	}
	taskList, err := tasks.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	task := taskList[0]

	registry := tools.NewRegistry()
	runner := session.NewRunner(registry, 1)
	evaluator := scoring.NewEvaluator()

	var rewards []float64
	var callCounts []int
	for run := 0; run < 3; run++ {
		jr := runner.Run(context.Background(), []session.Job{{
			Name:     task.Name,
			Seed:     task.BuildSeed(),
			Requests: task.Script,
		}})[0]
		if jr.Err != nil {
			t.Fatalf("run %d: %v", run, jr.Err)
		}
		report := evaluator.Evaluate(task.Scoring, jr.Result)
		rewards = append(rewards, report.Reward)
		callCounts = append(callCounts, len(jr.Result.Records))
	}
	for i := 1; i < len(rewards); i++ {
		if rewards[i] != rewards[0] || callCounts[i] != callCounts[0] {
			t.Errorf("run %d diverged: reward %v vs %v, calls %d vs %d",
				i, rewards[i], rewards[0], callCounts[i], callCounts[0])
		}
	}
}
