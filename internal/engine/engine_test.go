package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "store.db")

	e, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
	if e.Path() != path {
		t.Errorf("Path() = %q, want %q", e.Path(), path)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("Open(\"\") should fail")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	if err := e.Set("greeting", "hello", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, domain, found, err := e.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("key not found after Set")
	}
	if value != "hello" {
		t.Errorf("value = %q, want %q", value, "hello")
	}
	if domain != DomainString {
		t.Errorf("domain = %q, want %q", domain, DomainString)
	}
}

func TestGetAbsentKey(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	_, _, found, err := e.Get("never-written")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("found = true for absent key")
	}
}

func TestSetReplacesDomain(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	if err := e.Set("shared", "text", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := e.Set("shared", "42", DomainNumber); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, domain, found, err := e.Get("shared")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if value != "42" || domain != DomainNumber {
		t.Errorf("got (%q, %q), want (\"42\", %q)", value, domain, DomainNumber)
	}
}

func TestRemove(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	if err := e.Set("doomed", "x", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := e.Remove("doomed"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	_, _, found, err := e.Get("doomed")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("key still present after Remove")
	}

	// Removing an absent key is not an error
	if err := e.Remove("doomed"); err != nil {
		t.Errorf("Remove of absent key failed: %v", err)
	}
}

func TestClearAllAndAllKeys(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	for _, k := range []string{"b", "a", "c"} {
		if err := e.Set(k, "v", DomainString); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	keys, err := e.AllKeys()
	if err != nil {
		t.Fatalf("AllKeys failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("AllKeys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("AllKeys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if err := e.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	keys, err = e.AllKeys()
	if err != nil {
		t.Fatalf("AllKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("AllKeys after ClearAll = %v, want empty", keys)
	}
}

func TestContains(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	ok, err := e.Contains("k")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if ok {
		t.Error("Contains = true before Set")
	}

	if err := e.Set("k", "v", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	ok, err = e.Contains("k")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !ok {
		t.Error("Contains = false after Set")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	e, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := e.Set("persisted", "survives", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	e2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer e2.Close()

	value, _, found, err := e2.Get("persisted")
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if value != "survives" {
		t.Errorf("value = %q, want %q", value, "survives")
	}
}

func TestClosedEngine(t *testing.T) {
	e, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close is idempotent
	if err := e.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, _, _, err := e.Get("k"); err != ErrClosed {
		t.Errorf("Get after Close: err = %v, want ErrClosed", err)
	}
	if err := e.Set("k", "v", DomainString); err != ErrClosed {
		t.Errorf("Set after Close: err = %v, want ErrClosed", err)
	}
	if err := e.Remove("k"); err != ErrClosed {
		t.Errorf("Remove after Close: err = %v, want ErrClosed", err)
	}
	if _, err := e.AllKeys(); err != ErrClosed {
		t.Errorf("AllKeys after Close: err = %v, want ErrClosed", err)
	}
	if _, err := e.Contains("k"); err != ErrClosed {
		t.Errorf("Contains after Close: err = %v, want ErrClosed", err)
	}
	if err := e.ClearAll(); err != ErrClosed {
		t.Errorf("ClearAll after Close: err = %v, want ErrClosed", err)
	}
	if _, err := e.Stats(); err != ErrClosed {
		t.Errorf("Stats after Close: err = %v, want ErrClosed", err)
	}
}

func TestStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	e, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer e.Close()

	if err := e.Set("s", "x", DomainString); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := e.Set("n", "1", DomainNumber); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := e.Set("n2", "2", DomainNumber); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	stats, err := e.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Keys != 3 {
		t.Errorf("Keys = %d, want 3", stats.Keys)
	}
	if stats.Domains[DomainNumber] != 2 {
		t.Errorf("number domain count = %d, want 2", stats.Domains[DomainNumber])
	}
	if stats.Domains[DomainString] != 1 {
		t.Errorf("string domain count = %d, want 1", stats.Domains[DomainString])
	}
	if stats.Path != path {
		t.Errorf("Path = %q, want %q", stats.Path, path)
	}
}
