//go:build linux

// File: executor/step_linux_test.go
// License: Apache-2.0

package executor_test

import (
	"encoding/binary"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/hostloop/hostloop/executor"
)

// A step callback invoked without a pending notification must service
// nothing: jobs are paired one-to-one with signals, and a spurious
// edge from the host must not consume a job another signal paid for.
func TestStep_SpuriousEdgeServicesNothing(t *testing.T) {
	ex := newExecutor(t)

	completed := false
	executor.Spawn(ex, yielding(1, 0, func() { completed = true }))
	if n := ex.PendingJobs(); n != 1 {
		t.Fatalf("PendingJobs = %d after a pending spawn, want 1", n)
	}

	// Consume the notification out from under the executor, the way a
	// misbehaving host draining the descriptor itself would.
	fd := int(ex.WakeupFd())
	var buf [8]byte
	if _, err := unix.Read(fd, buf[:]); err != nil {
		t.Fatalf("stealing the notification: %v", err)
	}

	ex.Step()
	if completed {
		t.Fatal("spurious step serviced a job")
	}
	if n := ex.PendingJobs(); n != 1 {
		t.Fatalf("PendingJobs = %d after a spurious step, want 1", n)
	}

	// Restore the notification; the job is serviced on the real edge.
	binary.NativeEndian.PutUint64(buf[:], 1)
	if _, err := unix.Write(fd, buf[:]); err != nil {
		t.Fatalf("restoring the notification: %v", err)
	}
	ex.Step()
	if !completed {
		t.Fatal("job not serviced once its notification was back")
	}
}
