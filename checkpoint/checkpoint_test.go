package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

func init() {
	logging.SetLevel(logging.ERROR, "checkpoint")
}

func openDB(tst *testing.T) *bolt.DB {
	db, err := bolt.Open(filepath.Join(tst.TempDir(), "chains.db"), 0600, nil)
	if err != nil {
		tst.Fatal("Error opening database:", err)
	}
	tst.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoad(tst *testing.T) {
	db := openDB(tst)
	cio := NewCheckpointIO(db, []byte("chain0"), 10)

	data, err := cio.Load()
	if err != nil || data != nil {
		tst.Fatal("Empty database should have no checkpoint:", data, err)
	}

	err = cio.Save(&CheckpointData{
		Theta:        2.1,
		LogPosterior: -3.5,
		Iter:         4,
		Accepted:     3,
		Iterations:   4,
		BurnIn:       1,
		Final:        true,
		Seconds:      1.5,
		Chain:        []float64{0.5, 1, 1, 2.1},
	})
	if err != nil {
		tst.Fatal("Error saving checkpoint:", err)
	}

	data, err = cio.Load()
	if err != nil {
		tst.Fatal("Error loading checkpoint:", err)
	}
	if data == nil || !data.Final || data.Accepted != 3 || len(data.Chain) != 4 || data.Chain[3] != 2.1 || data.Seconds != 1.5 {
		tst.Error("Wrong checkpoint data:", data)
	}

	other, err := NewCheckpointIO(db, []byte("chain1"), 10).Load()
	if err != nil || other != nil {
		tst.Error("Checkpoints should be stored per key:", other, err)
	}
}

func TestNilDB(tst *testing.T) {
	cio := NewCheckpointIO(nil, []byte("chain0"), 0)
	if err := cio.Save(&CheckpointData{Iterations: 1}); err != nil {
		tst.Error("Saving without database should be a no-op:", err)
	}
	data, err := cio.Load()
	if data != nil || err != nil {
		tst.Error("Loading without database should return nothing:", data, err)
	}
}

func TestOld(tst *testing.T) {
	cio := NewCheckpointIO(nil, []byte("chain0"), -1)
	if !cio.Old() {
		tst.Error("Checkpoint with negative period should always be old")
	}
	cio = NewCheckpointIO(nil, []byte("chain0"), 3600)
	if cio.Old() {
		tst.Error("Fresh checkpoint should not be old")
	}
}
