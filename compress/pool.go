package compress

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/internal/pool"
)

// Pool is a name -> Compressor dictionary with unique names, per §4.3. It
// owns a single scratch buffer shared across Compress/CompressContinuations
// calls; callers must not use a Pool concurrently without external
// synchronization (§5).
type Pool struct {
	mu      sync.Mutex
	names   []string
	byName  map[string]Compressor
	scratch *pool.ByteBuffer
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{
		byName:  make(map[string]Compressor),
		scratch: pool.NewByteBuffer(pool.ScratchBufferDefaultSize),
	}
}

// Register adds comp under name. It rejects empty names, nil instances, and
// duplicate names.
func (p *Pool) Register(name string, comp Compressor) error {
	if name == "" {
		return fmt.Errorf("%w: empty compressor name", errs.ErrInvalidArgument)
	}
	if comp == nil {
		return fmt.Errorf("%w: nil compressor for %q", errs.ErrInvalidArgument, name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byName[name]; exists {
		return fmt.Errorf("%w: duplicate compressor name %q", errs.ErrCompressorsError, name)
	}
	p.byName[name] = comp
	p.names = append(p.names, name)
	return nil
}

// Names returns the registered compressor names in registration order.
func (p *Pool) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.names...)
}

// SetAlphabet broadcasts the symbol range to every registered compressor.
func (p *Pool) SetAlphabet(min, max int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, comp := range p.byName {
		if err := comp.SetAlphabet(min, max); err != nil {
			return fmt.Errorf("%w: %s: %v", errs.ErrCompressorsError, name, err)
		}
	}
	return nil
}

// Compress dispatches to the named compressor's Compress.
func (p *Pool) Compress(name string, data []byte) (int, error) {
	comp, err := p.lookup(name)
	if err != nil {
		return 0, err
	}
	return comp.Compress(data)
}

// CompressContinuations dispatches to the named compressor's
// CompressContinuations, passing history through the pool's shared scratch
// buffer; the backend appends each continuation itself.
func (p *Pool) CompressContinuations(name string, history []byte, continuations []continuation.Continuation) ([]int, error) {
	comp, err := p.lookup(name)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.scratch.Reset()
	p.scratch.MustWrite(history)
	// comp.CompressContinuations runs synchronously under the lock and must
	// not retain scratch's backing array past this call; the buffer is
	// reused (not copied) on the next CompressContinuations call.
	return comp.CompressContinuations(p.scratch.Bytes(), continuations)
}

func (p *Pool) lookup(name string) (Compressor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	comp, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown compressor %q", errs.ErrCompressorsError, name)
	}
	return comp, nil
}

// StandardNames lists the canonical backend names of §4.3's standard pool,
// in the order the spec enumerates them.
var StandardNames = []string{"lcacomp", "rp", "zstd", "bzip2", "zlib", "ppmd", "automation", "zpaq"}

// unimplementedCompressor is registered under the four research-specific
// slots (lcacomp, rp, ppmd, zpaq) with no real Go ecosystem backend: it
// holds the name reserved without fabricating a fake implementation.
type unimplementedCompressor struct{ name string }

var _ Compressor = unimplementedCompressor{}

func (u unimplementedCompressor) Compress(data []byte) (int, error) {
	return 0, fmt.Errorf("%w: %s has no registered backend", errs.ErrNotImplemented, u.name)
}

func (u unimplementedCompressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return nil, fmt.Errorf("%w: %s has no registered backend", errs.ErrNotImplemented, u.name)
}

func (u unimplementedCompressor) SetAlphabet(min, max int) error { return nil }

// NewStandardPool returns a Pool with the canonical backends registered:
// zstd, zlib, lz4, s2, bzip2, and automation backed by real libraries, plus
// registration slots for lcacomp, rp, ppmd, zpaq (§1's explicit scope note:
// no third-party implementation of those research-specific algorithms
// exists in the Go ecosystem).
func NewStandardPool(minSym, maxSym int) (*Pool, error) {
	p := NewPool()

	backends := map[string]Compressor{
		"zstd":       NewZstdCompressor(),
		"zlib":       NewZlibCompressor(),
		"s2":         NewS2Compressor(),
		"bzip2":      NewBzip2Compressor(),
		"automation": NewAutomationCompressor(minSym, maxSym),
	}
	// lz4 is registered separately below (the pool also exposes it under
	// its own name even though §4.3's canonical list does not mention it,
	// since the teacher's native codec is lz4 and dropping it outright
	// would waste a grounded dependency).
	backends["lz4"] = NewLZ4Compressor()

	for _, name := range []string{"lcacomp", "rp", "ppmd", "zpaq"} {
		backends[name] = unimplementedCompressor{name: name}
	}

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := p.Register(name, backends[name]); err != nil {
			return nil, err
		}
	}
	return p, nil
}
