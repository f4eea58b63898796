package storage

import (
	"path/filepath"
	"testing"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)

	// Unlock without lock should not error
	if err := lock.Unlock(); err != nil {
		t.Errorf("Unlock without lock should be a no-op, got: %v", err)
	}
}

func TestFileLock_Relock(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)

	for i := 0; i < 3; i++ {
		if err := lock.Lock(); err != nil {
			t.Fatalf("Lock %d failed: %v", i, err)
		}
		if err := lock.Unlock(); err != nil {
			t.Fatalf("Unlock %d failed: %v", i, err)
		}
	}
}
