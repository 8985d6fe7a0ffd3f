package watch

import (
	"testing"
	"time"
)

func recvSignal(t *testing.T, ch <-chan struct{}) bool {
	t.Helper()
	select {
	case _, ok := <-ch:
		return ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for signal")
		return false
	}
}

func TestNotifyReachesSubscriber(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sub := h.Subscribe("jobs")
	defer sub.Cancel()

	h.Notify("jobs")
	if !recvSignal(t, sub.C) {
		t.Fatal("expected an open-channel signal")
	}
}

func TestNotifyIsScopedToCollection(t *testing.T) {
	h := NewHub()
	defer h.Close()

	jobs := h.Subscribe("jobs")
	defer jobs.Cancel()
	customers := h.Subscribe("customers")
	defer customers.Cancel()

	h.Notify("customers")

	select {
	case <-jobs.C:
		t.Error("jobs subscriber received a customers signal")
	case <-time.After(50 * time.Millisecond):
	}
	if !recvSignal(t, customers.C) {
		t.Fatal("customers subscriber missed its signal")
	}
}

func TestNotifyCoalesces(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sub := h.Subscribe("jobs")
	defer sub.Cancel()

	for i := 0; i < 10; i++ {
		h.Notify("jobs")
	}
	if !recvSignal(t, sub.C) {
		t.Fatal("expected at least one signal")
	}
	select {
	case <-sub.C:
		// one pending coalesced signal is acceptable
	case <-time.After(50 * time.Millisecond):
	}
	select {
	case <-sub.C:
		t.Error("more than two signals delivered for a single burst")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsDeliveryAndIsIdempotent(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sub := h.Subscribe("jobs")
	sub.Cancel()
	sub.Cancel()

	h.Notify("jobs")
	if recvSignal(t, sub.C) {
		t.Error("cancelled subscription received a live signal")
	}
}

func TestCloseTerminatesSubscribers(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe("jobs")

	h.Close()
	if recvSignal(t, sub.C) {
		t.Error("expected channel close after hub shutdown")
	}

	late := h.Subscribe("jobs")
	if recvSignal(t, late.C) {
		t.Error("subscription after Close should be immediately closed")
	}
	h.Notify("jobs")
}
