package effects

import (
	"testing"
	"time"

	"hordehouse/sim/config"
)

func testLedger() *Ledger {
	catalog := config.Default()
	return NewLedger(&catalog)
}

func TestActivate_RefreshDoesNotStack(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)

	ledger.Activate("haste", t0)
	ledger.Activate("haste", t0.Add(5*time.Second))

	count := 0
	ledger.ForEach(func(*ActiveEffect) { count++ })
	if count != 1 {
		t.Fatalf("expected a single haste instance, got %d", count)
	}

	// The refresh pushed expiry to t0+15s, past the original t0+10s.
	if expired := ledger.Update(t0.Add(12 * time.Second)); len(expired) != 0 {
		t.Fatalf("expected refreshed effect still live, expired %v", expired)
	}
	if expired := ledger.Update(t0.Add(15 * time.Second)); len(expired) != 1 || expired[0] != "haste" {
		t.Fatalf("expected haste to expire at refreshed deadline, got %v", expired)
	}
}

func TestActivate_UnknownTypeIsNoOp(t *testing.T) {
	ledger := testLedger()
	ledger.Activate("invincibility", time.Unix(100, 0))

	if ledger.IsActive("invincibility") {
		t.Fatalf("expected unknown effect to stay inactive")
	}
}

func TestUpdate_IsIdempotentAtSameInstant(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)
	ledger.Activate("rage", t0)

	deadline := t0.Add(8 * time.Second)
	if expired := ledger.Update(deadline); len(expired) != 1 {
		t.Fatalf("expected rage expired, got %v", expired)
	}
	if expired := ledger.Update(deadline); len(expired) != 0 {
		t.Fatalf("expected second update to report nothing, got %v", expired)
	}
}

func TestPauseResume_PreservesRemainingDuration(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)
	ledger.Activate("haste", t0) // 10s

	// Pause 3 seconds in with 7 remaining.
	ledger.Pause(t0.Add(3 * time.Second))

	// Nothing expires regardless of how much wall time passes.
	if expired := ledger.Update(t0.Add(100 * time.Second)); expired != nil {
		t.Fatalf("expected no expiry while paused, got %v", expired)
	}
	if got := ledger.Remaining("haste", t0.Add(100*time.Second)); got != 7*time.Second {
		t.Fatalf("expected frozen 7s remaining, got %v", got)
	}

	resumeAt := t0.Add(103 * time.Second)
	ledger.Resume(resumeAt)

	if got := ledger.Remaining("haste", resumeAt); got != 7*time.Second {
		t.Fatalf("expected 7s remaining after resume, got %v", got)
	}
	if expired := ledger.Update(resumeAt.Add(6 * time.Second)); len(expired) != 0 {
		t.Fatalf("expected haste still live 6s after resume, got %v", expired)
	}
	if expired := ledger.Update(resumeAt.Add(7 * time.Second)); len(expired) != 1 {
		t.Fatalf("expected haste expired 7s after resume, got %v", expired)
	}
}

func TestPause_DropsAlreadyExpired(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)
	ledger.Activate("shield", t0) // 6s

	ledger.Pause(t0.Add(10 * time.Second))
	if ledger.IsActive("shield") {
		t.Fatalf("expected overdue effect dropped at pause")
	}
}

func TestPauseResume_RepeatedCallsAreNoOps(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)
	ledger.Activate("haste", t0)

	ledger.Pause(t0.Add(2 * time.Second))
	ledger.Pause(t0.Add(50 * time.Second)) // ignored
	ledger.Resume(t0.Add(60 * time.Second))
	ledger.Resume(t0.Add(70 * time.Second)) // ignored

	if got := ledger.Remaining("haste", t0.Add(60*time.Second)); got != 8*time.Second {
		t.Fatalf("expected 8s remaining from the first pause, got %v", got)
	}
}

func TestMagnitude_NeutralWhenAbsent(t *testing.T) {
	ledger := testLedger()
	t0 := time.Unix(100, 0)

	if got := ledger.Magnitude("rage"); got != 1.0 {
		t.Fatalf("expected neutral magnitude 1.0, got %g", got)
	}

	ledger.Activate("rage", t0)
	if got := ledger.Magnitude("rage"); got != 2.0 {
		t.Fatalf("expected configured magnitude 2.0, got %g", got)
	}

	ledger.Update(t0.Add(8 * time.Second))
	if got := ledger.Magnitude("rage"); got != 1.0 {
		t.Fatalf("expected neutral magnitude after expiry, got %g", got)
	}
}

func TestRemaining_ZeroWhenAbsent(t *testing.T) {
	ledger := testLedger()
	if got := ledger.Remaining("haste", time.Unix(100, 0)); got != 0 {
		t.Fatalf("expected zero remaining for inactive effect, got %v", got)
	}
}
