package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestInitializeDisabled(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, false, "info"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	// Disabled logging must not create the logs directory
	Engine("this should go nowhere")
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory created while disabled")
	}
}

func TestInitializeEnabledWritesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, true, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() {
		CloseAll()
		// Reset package state for other tests
		Initialize("", false, "info")
	}()

	Engine("engine message %d", 1)
	KVDebug("kv debug message")
	AtomError("atom error message")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}
	found := map[string]bool{}
	for _, e := range entries {
		for _, cat := range []string{"engine", "kv", "atom"} {
			if strings.Contains(e.Name(), cat) {
				found[cat] = true
			}
		}
	}
	for _, cat := range []string{"engine", "kv", "atom"} {
		if !found[cat] {
			t.Errorf("no log file for category %s", cat)
		}
	}
}

func TestInitializeWithDebugEnabledReturns(t *testing.T) {
	// Initialize writes a banner through Get, which takes the same state
	// lock; a reentrant acquisition would block here forever.
	dir := t.TempDir()
	done := make(chan error, 1)
	go func() {
		done <- Initialize(dir, true, "info")
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Initialize did not return")
	}
	defer func() {
		CloseAll()
		Initialize("", false, "info")
	}()

	// The banner must have landed in the config category log
	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}
	var bannerSeen bool
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name(), err)
		}
		if strings.Contains(string(data), "atomkv logging initialized") {
			bannerSeen = true
		}
	}
	if !bannerSeen {
		t.Error("banner missing from config log")
	}
}

func TestLoggingConcurrentWithInitialize(t *testing.T) {
	dir := t.TempDir()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				EngineDebug("worker %d message %d", i, j)
				KV("worker %d message %d", i, j)
			}
		}(i)
	}

	if err := Initialize(dir, true, "debug"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	wg.Wait()
	CloseAll()
	Initialize("", false, "info")
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, true, "error"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() {
		CloseAll()
		Initialize("", false, "info")
	}()

	Engine("info should be filtered")
	EngineError("error should pass")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", e.Name(), err)
		}
		if strings.Contains(string(data), "info should be filtered") {
			t.Errorf("info line written at error level")
		}
		if !strings.Contains(string(data), "error should pass") {
			t.Errorf("error line missing")
		}
	}
}
