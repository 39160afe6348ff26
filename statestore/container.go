// Package statestore is the reference implementation of the §6.3
// persistent state contract: a caller-side, filesystem-backed durable
// store for an LMS private key's (type, otstype, I, seed, q_next)
// tuple. It is not part of the core engine -- lms/lms performs no I/O
// and never imports this package -- but demonstrates the durability
// recipe a caller must follow: lockfile-guarded exclusive access,
// advance-then-persist ordering, and atomic rename-based updates.
package statestore

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/lms-go/lms-go/lms/common"
	"github.com/lms-go/lms-go/lms/lms"
	"github.com/nightlyone/lockfile"
	"github.com/rs/zerolog"
)

// Logger is the structured logger for store open/advance/close events.
// It never logs the seed.
var Logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

const recordMagic = "lms-go-statestore-v1"

// Store is a single LMS private key's durable record, guarded by an
// exclusive lockfile so at most one process holds q_next at a time.
type Store struct {
	path   string
	lock   lockfile.Lockfile
	opened bool

	typecode common.LmsAlgorithmType
	otstype  common.LmsOtsAlgorithmType
	id       common.ID
	seed     []byte
	qNext    uint32
}

// Open acquires the exclusive lock on path and loads the record if one
// exists. Per spec.md §6.3 ("refuse to load without a durability
// guarantee"), a lock already held -- by another process, or by an
// earlier Open in this process that has not been closed -- is reported
// distinctly via Locked so a caller can decide whether to wait or abort,
// instead of silently blocking.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, wrapErrorf(err, "statestore: failed to resolve path %s", path)
	}

	lockPath := abs + ".lock"
	flock, err := lockfile.New(lockPath)
	if err != nil {
		return nil, wrapErrorf(err, "statestore: failed to create lockfile %s", lockPath)
	}
	// TryLock grants a lockfile whose recorded owner is this process, so
	// a second Open from the same process is caught here.
	if owner, err := flock.GetOwner(); err == nil && owner.Pid == os.Getpid() {
		return nil, &Error{msg: "statestore: " + abs + " is already open in this process", locked: true}
	}
	if err := flock.TryLock(); err != nil {
		if _, ok := err.(interface{ Temporary() bool }); ok {
			return nil, &Error{msg: "statestore: " + abs + " is already open elsewhere", locked: true}
		}
		return nil, wrapErrorf(err, "statestore: failed to lock %s", lockPath)
	}

	st := &Store{path: abs, lock: flock, opened: true}

	if _, err := os.Stat(abs); os.IsNotExist(err) {
		Logger.Info().Str("path", abs).Msg("statestore: opened new record")
		return st, nil
	}

	if err := st.load(); err != nil {
		_ = flock.Unlock()
		return nil, err
	}

	Logger.Info().Str("path", abs).Uint32("q_next", st.qNext).Msg("statestore: opened existing record")
	return st, nil
}

// Initialize persists a freshly generated private key's durable fields.
// Must be called exactly once on a Store returned from Open for a
// nonexistent record, before the first Advance.
func (st *Store) Initialize(priv *lms.LmsPrivateKey, seed []byte) error {
	if !st.opened {
		return newError("statestore: store is closed")
	}

	st.id = priv.ID()
	st.seed = append([]byte(nil), seed...)
	st.qNext = priv.Q()
	st.typecode = common.LMS_SHA256_M32_H10
	st.otstype = common.LMOTS_SHA256_N32_W8

	return st.writeRecord()
}

// QNext returns the last durably persisted leaf counter.
func (st *Store) QNext() uint32 {
	return st.qNext
}

// Advance durably records that q_next has moved to newQNext. Per
// spec.md §4.8/§5, the in-memory signer increments q_next before
// anything else can fail; Advance must be called -- and must return
// before the signature it authorizes is released to any consumer --
// so a crash never leaves a leaf re-signable on restart.
func (st *Store) Advance(newQNext uint32) error {
	if !st.opened {
		return newError("statestore: store is closed")
	}
	if newQNext <= st.qNext && st.qNext != 0 {
		return newError("statestore: refusing to move q_next backward (%d -> %d)", st.qNext, newQNext)
	}
	prev := st.qNext
	st.qNext = newQNext
	if err := st.writeRecord(); err != nil {
		st.qNext = prev
		return err
	}
	Logger.Info().Uint32("q_next", newQNext).Msg("statestore: advanced")
	return nil
}

// Seed returns the raw seed bytes for reconstructing the in-memory
// private key via lms.NewPrivateKeyFromSeed. The returned slice is the
// store's own buffer, not a copy: Advance writes it to disk and Close
// zeroizes it, and lms.NewPrivateKeyFromSeed keeps a reference to the
// slice it is given.
func (st *Store) Seed() []byte {
	return st.seed
}

// ID returns the persisted key identifier.
func (st *Store) ID() common.ID {
	return st.id
}

func (st *Store) load() error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return wrapErrorf(err, "statestore: failed to read record %s", st.path)
	}
	if len(data) < len(recordMagic)+4+4+4+int(common.ID_LEN) {
		return newError("statestore: record %s is truncated", st.path)
	}

	cur := 0
	if string(data[cur:cur+len(recordMagic)]) != recordMagic {
		return newError("statestore: record %s has an invalid header", st.path)
	}
	cur += len(recordMagic)

	typecode := binary.BigEndian.Uint32(data[cur : cur+4])
	cur += 4
	otstype := binary.BigEndian.Uint32(data[cur : cur+4])
	cur += 4
	qNext := binary.BigEndian.Uint32(data[cur : cur+4])
	cur += 4

	var id common.ID
	copy(id[:], data[cur:cur+int(common.ID_LEN)])
	cur += int(common.ID_LEN)

	seed := append([]byte(nil), data[cur:]...)

	st.typecode = common.Uint32ToLmsType(typecode)
	st.otstype = common.Uint32ToLmotsType(otstype)
	if _, err := st.typecode.LmsType(); err != nil {
		return wrapErrorf(err, "statestore: record %s names an unsupported LMS type", st.path)
	}
	if _, err := st.otstype.LmsOtsType(); err != nil {
		return wrapErrorf(err, "statestore: record %s names an unsupported LM-OTS type", st.path)
	}

	st.id = id
	st.seed = seed
	st.qNext = qNext
	return nil
}

// writeRecord durably writes the current state to disk: temp file,
// fsync, rename, then fsync the parent directory, so a crash at any
// point either leaves the old record intact or the new one fully
// written -- never a half-written one.
func (st *Store) writeRecord() error {
	tmpPath := st.path + ".tmp"
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return wrapErrorf(err, "statestore: failed to create temporary record %s", tmpPath)
	}

	var buf []byte
	var u32 [4]byte

	buf = append(buf, []byte(recordMagic)...)

	lmsType, _ := st.typecode.LmsType()
	binary.BigEndian.PutUint32(u32[:], lmsType.ToUint32())
	buf = append(buf, u32[:]...)

	otsType, _ := st.otstype.LmsOtsType()
	binary.BigEndian.PutUint32(u32[:], otsType.ToUint32())
	buf = append(buf, u32[:]...)

	binary.BigEndian.PutUint32(u32[:], st.qNext)
	buf = append(buf, u32[:]...)

	buf = append(buf, st.id[:]...)
	buf = append(buf, st.seed...)

	if _, err = tmpFile.Write(buf); err != nil {
		tmpFile.Close()
		return wrapErrorf(err, "statestore: failed to write temporary record")
	}
	if err = tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return wrapErrorf(err, "statestore: failed to sync temporary record")
	}
	if err = tmpFile.Close(); err != nil {
		return wrapErrorf(err, "statestore: failed to close temporary record")
	}

	if err = os.Rename(tmpPath, st.path); err != nil {
		return wrapErrorf(err, "statestore: failed to install record")
	}

	dirName := filepath.Dir(st.path)
	dirFd, err := syscall.Open(dirName, syscall.O_DIRECTORY, syscall.O_RDONLY)
	if err != nil {
		return wrapErrorf(err, "statestore: failed to open parent directory %s", dirName)
	}
	if err = syscall.Fsync(dirFd); err != nil {
		syscall.Close(dirFd)
		return wrapErrorf(err, "statestore: failed to sync parent directory")
	}
	if err = syscall.Close(dirFd); err != nil {
		return wrapErrorf(err, "statestore: failed to close parent directory fd")
	}

	return nil
}

// Close releases the lockfile. Zeroizes the in-memory seed copy first.
func (st *Store) Close() error {
	var result error

	for i := range st.seed {
		st.seed[i] = 0
	}
	st.seed = nil

	if err := st.lock.Unlock(); err != nil {
		result = multierror.Append(result, wrapErrorf(err, "statestore: failed to release lock on %s", st.path))
	}
	st.opened = false

	if result != nil {
		return result
	}
	return nil
}
