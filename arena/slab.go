package arena

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	slabSize   = 1 << 24
	chunkShift = 18
	chunkSize  = 1 << chunkShift
	chunkMask  = chunkSize - 1

	blockHeader = 8  // rounded block size, stored ahead of the returned address
	chunkHeader = 16 // live-byte counter at the chunk base, padded for alignment
)

// Stats describes the arena's byte accounting at a point in time.
type Stats struct {
	// Allocated is the number of bytes currently handed out, including
	// block headers.
	Allocated int64

	// Free is the number of bytes reusable without mapping more memory:
	// the tail of the current chunk plus recycled chunks. Blocks freed
	// inside a partially-live chunk do not count until the chunk drains.
	Free int64

	// Mapped is the total number of bytes obtained from the system.
	Mapped int64
}

type chunk struct {
	base uintptr
	off  uintptr
}

// Slab is the map-backed Allocator. Chunks are bump-allocated in blocks;
// individual blocks are not reused, but a chunk whose blocks have all been
// freed is recycled whole.
type Slab struct {
	mu    sync.Mutex
	slab  []byte // unused tail of the current map
	cur   chunk
	freec []chunk
	stats Stats
}

// NewSlab returns an empty arena. It maps nothing until the first
// allocation.
func NewSlab() *Slab {
	return &Slab{}
}

func live(base uintptr) *int64 {
	return (*int64)(unsafe.Pointer(base))
}

// Alloc returns an 8-aligned block of at least size bytes. Map failure is
// fatal; sizes larger than a chunk panic.
func (s *Slab) Alloc(size int) unsafe.Pointer {
	if size == 0 {
		return Sentinel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := uintptr(blockHeader + (size+7)&^7)
	if n > chunkSize-chunkHeader {
		panic("arena: allocation exceeds chunk size")
	}
	if s.cur.base == 0 || s.cur.off+n > chunkSize {
		s.nextChunk()
	}

	blk := s.cur.base + s.cur.off
	*(*uint64)(unsafe.Pointer(blk)) = uint64(n)
	s.cur.off += n
	*live(s.cur.base) += int64(n)
	s.stats.Allocated += int64(n)
	s.stats.Free -= int64(n)
	return unsafe.Pointer(blk + blockHeader)
}

// Free releases a block returned by Alloc. The containing chunk is
// recycled once every block in it has been freed.
func (s *Slab) Free(ptr unsafe.Pointer) {
	if ptr == Sentinel() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blk := uintptr(ptr) - blockHeader
	n := int64(*(*uint64)(unsafe.Pointer(blk)))
	base := blk &^ chunkMask

	*live(base) -= n
	s.stats.Allocated -= n
	if *live(base) == 0 && base != s.cur.base {
		s.freec = append(s.freec, chunk{base: base, off: chunkHeader})
		s.stats.Free += chunkSize - chunkHeader
	}
}

// Stats returns a snapshot of the byte accounting.
func (s *Slab) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Slab) nextChunk() {
	if s.cur.base != 0 {
		// the retired chunk's tail is unreachable until the chunk drains
		s.stats.Free -= int64(chunkSize - s.cur.off)
		if *live(s.cur.base) == 0 {
			s.freec = append(s.freec, chunk{base: s.cur.base, off: chunkHeader})
			s.stats.Free += chunkSize - chunkHeader
		}
	}
	if len(s.freec) > 0 {
		s.cur = s.freec[len(s.freec)-1]
		s.freec = s.freec[:len(s.freec)-1]
		return
	}
	s.cur = chunk{base: s.grow(), off: chunkHeader}
	s.stats.Free += int64(chunkSize - chunkHeader)
}

func (s *Slab) grow() uintptr {
	if len(s.slab) < chunkSize {
		m, err := unix.Mmap(-1, 0, slabSize+chunkSize, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			Logger().Fatal("anonymous map failed",
				zap.Int("bytes", slabSize+chunkSize), zap.Error(err))
		}
		// carve from the first chunk-aligned address so every chunk base
		// stays chunk-aligned
		base := uintptr(unsafe.Pointer(&m[0]))
		skip := (chunkSize - base&chunkMask) & chunkMask
		s.slab = m[skip:]
		s.stats.Mapped += int64(len(s.slab))
		Logger().Debug("mapped slab", zap.Int("bytes", len(s.slab)))
	}
	base := uintptr(unsafe.Pointer(&s.slab[0]))
	s.slab = s.slab[chunkSize:]
	*live(base) = 0
	return base
}
