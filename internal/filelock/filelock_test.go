package filelock

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "files.csv.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock1 := NewFileLock(lockPath)
	lock2 := NewFileLock(lockPath)

	acquired, err := lock1.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("First TryLock should succeed")
	}

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		t.Fatal("Second TryLock should fail while the first holds the lock")
	}

	if err := lock1.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	acquired, err = lock2.TryLock()
	if err != nil || !acquired {
		t.Fatalf("TryLock after unlock = %v, %v; want true, nil", acquired, err)
	}
	lock2.Unlock()
}

func TestLockContextCancelled(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	holder := NewFileLock(lockPath)
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := NewFileLock(lockPath).LockContext(ctx)
	if err == nil {
		t.Fatal("LockContext should fail while another holder has the lock")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.csv")

	if err := AtomicWrite(path, writeString("a,b\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("content = %q, want %q", data, "a,b\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("perm = %v, want 0644", info.Mode().Perm())
	}
}

func TestAtomicWriteOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.csv")

	if err := AtomicWrite(path, writeString("first pass, much longer content\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if err := AtomicWrite(path, writeString("second\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second\n" {
		t.Errorf("content = %q, want %q", data, "second\n")
	}
}

func TestAtomicWriteErrorKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "files.csv")

	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := AtomicWrite(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("original content changed to %q", data)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteCreateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "files.csv")

	if err := AtomicWrite(path, writeString("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestLockAndWriteRemovesLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.csv")

	if err := LockAndWrite(context.Background(), path, writeString("x")); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat err = %v", err)
	}

	boom := errors.New("boom")
	if err := LockAndWrite(context.Background(), path, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed after error, stat err = %v", err)
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.csv")
	const writers = 5

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := strings.Repeat(string(rune('a'+i)), 1000)
			errs <- LockAndWrite(context.Background(), path, writeString(content))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("LockAndWrite failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) != 1000 || strings.Count(string(data), string(data[0])) != 1000 {
		t.Errorf("file content is interleaved: %q...", data[:20])
	}
}
