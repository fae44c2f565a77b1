package session

import (
	"context"
	"testing"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

func newStore(t *testing.T) *restaurant.Store {
	t.Helper()
	store, err := restaurant.DefaultSeed().Build()
	if err != nil {
		t.Fatalf("building seed: %v", err)
	}
	return store
}

func TestSessionLogsEveryCallInOrder(t *testing.T) {
	sess := New(newStore(t), tools.NewRegistry())

	reqs := []tools.Request{
		{Tool: "get_restaurant_info"},
		{Tool: "no_such_tool"},
		{Tool: "check_lunch_special_availability"},
	}
	for _, req := range reqs {
		if _, err := sess.Apply(req); err != nil {
			t.Fatalf("Apply(%s): %v", req.Tool, err)
		}
	}

	log := sess.Log()
	if len(log) != 3 {
		t.Fatalf("log length = %d, want 3", len(log))
	}
	for i, rec := range log {
		if rec.Seq != i {
			t.Errorf("record %d has seq %d", i, rec.Seq)
		}
		if rec.Tool != reqs[i].Tool {
			t.Errorf("record %d tool = %s, want %s", i, rec.Tool, reqs[i].Tool)
		}
	}
	// Rejected calls stay in the log.
	if log[1].Status != tools.StatusInvalidArgument {
		t.Errorf("rejected call status = %s", log[1].Status)
	}
}

func TestSessionTimeoutPreservesLog(t *testing.T) {
	sess := New(newStore(t), tools.NewRegistry(), WithTimeout(time.Nanosecond))
	if _, err := sess.Apply(tools.Request{Tool: "get_restaurant_info"}); err == nil {
		// The first call may land inside the window on a fast clock; the
		// second cannot.
		time.Sleep(time.Millisecond)
		if _, err := sess.Apply(tools.Request{Tool: "get_restaurant_info"}); err != ErrTimeout {
			t.Fatalf("err = %v, want ErrTimeout", err)
		}
	}

	res := sess.Finish()
	if !res.TimedOut {
		t.Error("result not marked timed out")
	}
	if len(res.Records) != len(sess.Log()) {
		t.Error("timeout dropped log records")
	}
}

func TestFinishSnapshotIsIsolated(t *testing.T) {
	store := newStore(t)
	sess := New(store, tools.NewRegistry())
	if _, err := sess.Apply(tools.Request{
		Tool: "suggest_waitlist",
		Args: tools.Args{"customer_name": "Party A", "party_size": 2},
	}); err != nil {
		t.Fatal(err)
	}

	res := sess.Finish()
	store.Waitlist = nil
	if len(res.Snapshot.Waitlist) != 1 {
		t.Errorf("snapshot waitlist = %v", res.Snapshot.Waitlist)
	}
}

func TestRunnerIsolatesParallelSessions(t *testing.T) {
	runner := NewRunner(tools.NewRegistry(), 4)

	jobs := make([]Job, 8)
	for i := range jobs {
		jobs[i] = Job{
			Name: "job",
			Requests: []tools.Request{
				{Tool: "process_points_redemption", Args: tools.Args{
					"customer_id": "C1001", "reward": "voucher_20",
				}},
			},
		}
	}

	results := runner.Run(context.Background(), jobs)
	for i, jr := range results {
		if jr.Err != nil {
			t.Fatalf("job %d: %v", i, jr.Err)
		}
		// Every session sees the full starting balance: no leakage.
		if got := jr.Result.Snapshot.Customer("C1001").Points; got != 12100 {
			t.Errorf("job %d final points = %d, want 12100", i, got)
		}
		if len(jr.Result.Records) != 1 || jr.Result.Records[0].Status != tools.StatusSuccess {
			t.Errorf("job %d records = %+v", i, jr.Result.Records)
		}
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(tools.NewRegistry(), 2)
	results := runner.Run(ctx, []Job{{Name: "a"}, {Name: "b"}})
	for _, jr := range results {
		if jr.Err == nil {
			t.Errorf("job %s ran after cancellation", jr.Name)
		}
	}
}
