package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("price", "12,50")
	if err != nil {
		t.Fatalf("parseAmount: %v", err)
	}
	if d.String() != "12.5" {
		t.Fatalf("parseAmount = %s, want 12.5", d)
	}
	if _, err := parseAmount("price", "doce"); err == nil {
		t.Fatal("parseAmount(doce) = nil error, want error")
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("dish id", "42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"0", "-3", "x"} {
		if _, err := parseID("dish id", raw); err == nil {
			t.Fatalf("parseID(%q) = nil error, want error", raw)
		}
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", ":9000", "--detach=true"})
	want := []string{"daemon", "--addr", ":9000"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestPidFileRoundTrip(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "run", "horecad.pid"))
	if err := pf.ensureFree(); err != nil {
		t.Fatalf("ensureFree on missing file: %v", err)
	}

	st := daemonState{PID: os.Getpid(), Addr: "127.0.0.1:9999", ClientID: 3}
	if err := pf.write(st); err != nil {
		t.Fatalf("write: %v", err)
	}
	pid, err := pf.pid()
	if err != nil || pid != st.PID {
		t.Fatalf("pid = %d, %v, want %d", pid, err, st.PID)
	}
	got, err := pf.state()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if got.Addr != st.Addr || got.ClientID != 3 {
		t.Fatalf("state = %+v, want addr %s client 3", got, st.Addr)
	}
	if err := pf.ensureFree(); err == nil {
		t.Fatal("ensureFree with live pid = nil, want error")
	}

	pf.remove()
	if _, err := pf.pid(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pid after remove: %v, want not exist", err)
	}
}
