package store

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/intcode/internal/intcode"
	"github.com/eigerco/intcode/pkg/db"
	"github.com/eigerco/intcode/pkg/log"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrEmptyName       = errors.New("program name must not be empty")
)

var (
	prefixProgram = []byte("program/")
	prefixHash    = []byte("hash/")
	prefixResult  = []byte("result/")
)

// canonical CBOR so equal values always hash to the same key
var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("store: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

type Hash [blake2b.Size256]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ProgramRecord a named program as persisted in the library
type ProgramRecord struct {
	Name  string  `cbor:"1,keyasint"`
	Words []int64 `cbor:"2,keyasint"`
	Hash  Hash    `cbor:"3,keyasint"`
}

type resultRecord struct {
	Memory []int64 `cbor:"1,keyasint"`
	Output []int64 `cbor:"2,keyasint"`
	Steps  uint64  `cbor:"3,keyasint"`
}

type runKey struct {
	Program []int64 `cbor:"1,keyasint"`
	Input   []int64 `cbor:"2,keyasint"`
}

// Library stores named programs and caches the results of halted runs.
// Runs are deterministic, so a result is keyed by program and input alone.
// Every name holding a program has its own hash/<hash>/<name> index entry.
type Library struct {
	db db.KVStore
	// serialises the read-modify-write of program records and their index
	mu sync.Mutex
}

func NewLibrary(kv db.KVStore) *Library {
	return &Library{db: kv}
}

// HashProgram returns the content hash of a program
func HashProgram(words []int64) (Hash, error) {
	b, err := encMode.Marshal(words)
	if err != nil {
		return Hash{}, fmt.Errorf("encode program: %w", err)
	}
	return blake2b.Sum256(b), nil
}

// SaveProgram stores words under name, replacing any program of the same name.
// The record and its hash index entry are written in one batch.
func (l *Library) SaveProgram(name string, words []int64) (Hash, error) {
	if name == "" {
		return Hash{}, ErrEmptyName
	}
	hash, err := HashProgram(words)
	if err != nil {
		return Hash{}, err
	}
	value, err := encMode.Marshal(ProgramRecord{Name: name, Words: words, Hash: hash})
	if err != nil {
		return Hash{}, fmt.Errorf("encode program record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	previous, err := l.record(name)
	if err != nil && !errors.Is(err, ErrProgramNotFound) {
		return Hash{}, err
	}

	batch := l.db.NewBatch()
	defer batch.Close()

	if previous != nil && previous.Hash != hash {
		if err := batch.Delete(indexKey(previous.Hash, name)); err != nil {
			return Hash{}, err
		}
	}
	if err := batch.Put(key(prefixProgram, name), value); err != nil {
		return Hash{}, err
	}
	if err := batch.Put(indexKey(hash, name), nil); err != nil {
		return Hash{}, err
	}
	if err := batch.Commit(); err != nil {
		return Hash{}, fmt.Errorf("commit program %q: %w", name, err)
	}

	log.Store.Debug().Str("name", name).Stringer("hash", hash).Int("words", len(words)).Msg("program saved")
	return hash, nil
}

// Program returns the words stored under name
func (l *Library) Program(name string) ([]int64, error) {
	rec, err := l.record(name)
	if err != nil {
		return nil, err
	}
	return rec.Words, nil
}

// Lookup returns a name a program with exactly these words was saved under.
// When several names hold the same words the lowest one is returned.
func (l *Library) Lookup(words []int64) (string, bool, error) {
	hash, err := HashProgram(words)
	if err != nil {
		return "", false, err
	}
	names, err := l.scan(key(prefixHash, hash.String()+"/"))
	if err != nil {
		return "", false, err
	}
	if len(names) == 0 {
		return "", false, nil
	}
	return names[0], true, nil
}

// Programs lists stored program names in ascending order
func (l *Library) Programs() ([]string, error) {
	return l.scan(prefixProgram)
}

func (l *Library) DeleteProgram(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := l.record(name)
	if err != nil {
		return err
	}

	batch := l.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(indexKey(rec.Hash, name)); err != nil {
		return err
	}
	if err := batch.Delete(key(prefixProgram, name)); err != nil {
		return err
	}
	return batch.Commit()
}

// Result returns the cached result of running program with input, if any
func (l *Library) Result(program, input []int64) (*intcode.Result, bool, error) {
	k, err := resultKey(program, input)
	if err != nil {
		return nil, false, err
	}
	value, err := l.db.Get(k)
	if errors.Is(err, db.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec resultRecord
	if err := cbor.Unmarshal(value, &rec); err != nil {
		return nil, false, fmt.Errorf("decode result: %w", err)
	}
	return &intcode.Result{Memory: rec.Memory, Output: rec.Output, Steps: rec.Steps}, true, nil
}

// SaveResult caches the result of a halted run
func (l *Library) SaveResult(program, input []int64, result *intcode.Result) error {
	k, err := resultKey(program, input)
	if err != nil {
		return err
	}
	value, err := encMode.Marshal(resultRecord{Memory: result.Memory, Output: result.Output, Steps: result.Steps})
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return l.db.Put(k, value)
}

func (l *Library) record(name string) (*ProgramRecord, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	value, err := l.db.Get(key(prefixProgram, name))
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rec := &ProgramRecord{}
	if err := cbor.Unmarshal(value, rec); err != nil {
		return nil, fmt.Errorf("decode program %q: %w", name, err)
	}
	return rec, nil
}

// scan returns the key suffixes under prefix in ascending order. Iterator
// failures surface on Close and fail the whole scan.
func (l *Library) scan(prefix []byte) (names []string, err error) {
	iter, err := l.db.NewIterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := iter.Close(); cerr != nil && err == nil {
			names, err = nil, fmt.Errorf("scan %q: %w", prefix, cerr)
		}
	}()

	for iter.Next() {
		names = append(names, string(bytes.TrimPrefix(iter.Key(), prefix)))
	}
	return names, nil
}

func indexKey(hash Hash, name string) []byte {
	return key(prefixHash, hash.String()+"/"+name)
}

func resultKey(program, input []int64) ([]byte, error) {
	// nil and empty input are the same run
	if len(input) == 0 {
		input = nil
	}
	b, err := encMode.Marshal(runKey{Program: program, Input: input})
	if err != nil {
		return nil, fmt.Errorf("encode run key: %w", err)
	}
	sum := blake2b.Sum256(b)
	return key(prefixResult, hex.EncodeToString(sum[:])), nil
}

func key(prefix []byte, suffix string) []byte {
	k := make([]byte, 0, len(prefix)+len(suffix))
	k = append(k, prefix...)
	return append(k, suffix...)
}

// prefixEnd the smallest key greater than every key starting with prefix
func prefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	end[len(end)-1]++
	return end
}
