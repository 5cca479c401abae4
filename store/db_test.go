package store

import (
	"path/filepath"
	"testing"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/fe"
	"ultrasonic.dev/sonic/ids"
	"ultrasonic.dev/sonic/state"
)

func mustOpen(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), "deadbeef")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_DestructiblePutGetDelete(t *testing.T) {
	db := mustOpen(t)
	addr := state.CellAddr{Opid: ids.Opid{1}, Pos: 3}
	cell := state.StateCell{
		Data: state.Single(fe.FromUint64(42)),
		Auth: state.NewAuthToken(fe.FromUint64(7)),
	}

	if err := db.PutDestructible(addr, cell); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := db.Destructible(addr)
	if !ok {
		t.Fatal("expected cell to be found")
	}
	if !got.Data.Equal(cell.Data) || !got.Auth.Equal(cell.Auth) || got.Lock != nil {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := db.DeleteDestructible(addr); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := db.Destructible(addr); ok {
		t.Fatal("expected cell to be gone after delete")
	}
}

func TestDB_DestructibleWithLockRoundTrips(t *testing.T) {
	db := mustOpen(t)
	addr := state.CellAddr{Opid: ids.Opid{2}, Pos: 0}
	cell := state.StateCell{
		Data: state.Double(fe.FromUint64(1), fe.FromUint64(2)),
		Auth: state.NewAuthToken(fe.FromUint64(9)),
		Lock: &alu.LibSite{Lib: alu.LibId{0xaa}, Offset: 12},
	}

	if err := db.PutDestructible(addr, cell); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := db.Destructible(addr)
	if !ok {
		t.Fatal("expected cell to be found")
	}
	if got.Lock == nil || *got.Lock != *cell.Lock {
		t.Fatalf("expected lock to round trip, got %+v", got.Lock)
	}
}

func TestDB_ImmutablePutGet(t *testing.T) {
	db := mustOpen(t)
	addr := state.CellAddr{Opid: ids.Opid{3}, Pos: 1}
	v := state.Quadripple(fe.FromUint64(1), fe.FromUint64(2), fe.FromUint64(3), fe.FromUint64(4))

	if err := db.PutImmutable(addr, v); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := db.Immutable(addr)
	if !ok || !got.Equal(v) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDB_LibRoundTrips(t *testing.T) {
	db := mustOpen(t)
	lib := alu.NewLib([]byte{0x84, 0x01}) // ldw; stop placeholder bytecode
	if err := db.PutLib(lib); err != nil {
		t.Fatalf("put lib: %v", err)
	}
	got, ok := db.GetLib(lib.LibId())
	if !ok {
		t.Fatal("expected lib to be found")
	}
	if got.LibId() != lib.LibId() {
		t.Fatal("expected lib id to round trip")
	}
}

func TestDB_MissingEntriesReportNotFound(t *testing.T) {
	db := mustOpen(t)
	addr := state.CellAddr{Opid: ids.Opid{9}, Pos: 0}
	if _, ok := db.Destructible(addr); ok {
		t.Fatal("expected miss")
	}
	if _, ok := db.Immutable(addr); ok {
		t.Fatal("expected miss")
	}
	if _, ok := db.GetLib(alu.LibId{1}); ok {
		t.Fatal("expected miss")
	}
}

func TestDB_ReopenPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir())
	db, err := Open(dir, "cafebabe")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	addr := state.CellAddr{Opid: ids.Opid{5}, Pos: 0}
	cell := state.StateCell{Data: state.Single(fe.FromUint64(11)), Auth: state.NewAuthToken(fe.FromUint64(1))}
	if err := db.PutDestructible(addr, cell); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(dir, "cafebabe")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Destructible(addr)
	if !ok || !got.Data.Equal(cell.Data) {
		t.Fatalf("expected data to survive reopen, got %+v ok=%v", got, ok)
	}
}
