package devices

import (
	"testing"

	"github.com/pkg/errors"
)

type testDevice struct {
	id      ID
	started bool
	fail    bool
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	if d.fail {
		return errors.New("boom")
	}
	d.started = true
	return nil
}

func (d *testDevice) Shutdown() error {
	d.started = false
	return nil
}

func TestMapConnect(t *testing.T) {
	var dm Map

	a := &testDevice{id: NewID(1, 1)}
	b := &testDevice{id: NewID(1, 2)}

	if !dm.Connect(a) || !dm.Connect(b) {
		t.Fatal("expected new devices to connect")
	}
	if dm.Connect(a) {
		t.Fatal("expected a duplicate id to be rejected")
	}
	if dm.Find(b.ID()) != 1 {
		t.Fatal("expected to find device b at index 1")
	}
	if dm.Find(NewID(9, 9)) != -1 {
		t.Fatal("expected an unknown id to find nothing")
	}
}

func TestMapStartupShutdown(t *testing.T) {
	var dm Map

	a := &testDevice{id: NewID(1, 1)}
	dm.Connect(a)

	if err := dm.Startup(); err != nil {
		t.Fatalf("Startup failure: %v", err)
	}
	if !a.started {
		t.Fatal("expected the device to be started")
	}

	if err := dm.Shutdown(); err != nil {
		t.Fatalf("Shutdown failure: %v", err)
	}
	if a.started {
		t.Fatal("expected the device to be stopped")
	}
}

func TestMapStartupErrors(t *testing.T) {
	var dm Map

	dm.Connect(&testDevice{id: NewID(1, 1), fail: true})
	dm.Connect(&testDevice{id: NewID(1, 2)})

	err := dm.Startup()
	if err == nil {
		t.Fatal("expected an error, have none")
	}
	if es, ok := err.(ErrorSet); !ok || es.Len() != 1 {
		t.Fatalf("expected an ErrorSet with one entry, have %v", err)
	}
}

func TestID(t *testing.T) {
	id := NewID(0x00c8, 0x0001)

	if id.Manufacturer() != 0x00c8 || id.Serial() != 0x0001 {
		t.Fatalf("expected 00c8:0001, have %s", id)
	}
	if id.String() != "00c8:0001" {
		t.Fatalf("expected 00c8:0001, have %s", id)
	}
}
