package vtcore

import (
	"crypto/sha256"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ImageData stores decoded image pixels and metadata for one stored
// image (a Sixel raster or a Kitty-protocol transfer). Grounded on the
// teacher's image.go `ImageData`/`ImageManager`, with uuid.UUID ids in
// place of the teacher's sequential uint32 counters (spec §4.8 domain
// stack: github.com/google/uuid).
type ImageData struct {
	ID         uuid.UUID
	Width      uint32
	Height     uint32
	Data       []byte
	Hash       [32]byte
	CreatedAt  time.Time
	AccessedAt time.Time
}

// ImagePlacement is one displayed instance of a stored image.
type ImagePlacement struct {
	ID      uuid.UUID
	ImageID uuid.UUID

	Row, Col   int
	Cols, Rows int

	SrcX, SrcY uint32
	SrcW, SrcH uint32

	ZIndex int32
}

// ImageManager stores images and their on-screen placements, enforcing
// a memory budget with LRU eviction of unreferenced images. Grounded
// on the teacher's image.go; the Kitty chunked-transfer accumulator
// fields live in kitty.go instead, scoped to the Kitty dispatcher.
type ImageManager struct {
	mu sync.RWMutex

	images     map[uuid.UUID]*ImageData
	placements map[uuid.UUID]*ImagePlacement
	hashToID   map[[32]byte]uuid.UUID

	maxMemory  int64
	usedMemory int64
}

// defaultImageMemoryBudget matches the teacher's 320MB default.
const defaultImageMemoryBudget = 320 * 1024 * 1024

// NewImageManager returns an empty ImageManager with the default
// memory budget.
func NewImageManager() *ImageManager {
	return &ImageManager{
		images:     make(map[uuid.UUID]*ImageData),
		placements: make(map[uuid.UUID]*ImagePlacement),
		hashToID:   make(map[[32]byte]uuid.UUID),
		maxMemory:  defaultImageMemoryBudget,
	}
}

// SetMaxMemory sets the image memory budget in bytes.
func (m *ImageManager) SetMaxMemory(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxMemory = bytes
}

// Store adds image data and returns its id, deduplicating identical
// pixel data by content hash.
func (m *ImageManager) Store(width, height uint32, data []byte) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash := sha256.Sum256(data)
	if existing, ok := m.hashToID[hash]; ok {
		if img, ok := m.images[existing]; ok {
			img.AccessedAt = timeNow()
			return existing
		}
	}

	id := uuid.New()
	now := timeNow()
	m.images[id] = &ImageData{
		ID:         id,
		Width:      width,
		Height:     height,
		Data:       data,
		Hash:       hash,
		CreatedAt:  now,
		AccessedAt: now,
	}
	m.hashToID[hash] = id
	m.usedMemory += int64(len(data))
	if m.usedMemory > m.maxMemory {
		m.pruneLocked()
	}
	return id
}

// Image returns the image data for id, or nil if not stored.
func (m *ImageManager) Image(id uuid.UUID) *ImageData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if img, ok := m.images[id]; ok {
		img.AccessedAt = timeNow()
		return img
	}
	return nil
}

// Place registers a placement and assigns it an id.
func (m *ImageManager) Place(p *ImagePlacement) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	m.placements[p.ID] = p
	return p.ID
}

// Placement returns the placement for id, or nil.
func (m *ImageManager) Placement(id uuid.UUID) *ImagePlacement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.placements[id]
}

// Placements returns every active placement, in no particular order.
func (m *ImageManager) Placements() []*ImagePlacement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ImagePlacement, 0, len(m.placements))
	for _, p := range m.placements {
		out = append(out, p)
	}
	return out
}

// RemovePlacement removes one placement by id.
func (m *ImageManager) RemovePlacement(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.placements, id)
}

// DeleteImage removes an image and every placement referencing it.
func (m *ImageManager) DeleteImage(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.images[id]; ok {
		m.usedMemory -= int64(len(img.Data))
		delete(m.hashToID, img.Hash)
		delete(m.images, id)
	}
	for pid, p := range m.placements {
		if p.ImageID == id {
			delete(m.placements, pid)
		}
	}
}

// DeletePlacementsInRow removes placements intersecting row.
func (m *ImageManager) DeletePlacementsInRow(row int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.placements {
		if row >= p.Row && row < p.Row+p.Rows {
			delete(m.placements, id)
		}
	}
}

// Clear removes every image and placement.
func (m *ImageManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = make(map[uuid.UUID]*ImageData)
	m.placements = make(map[uuid.UUID]*ImagePlacement)
	m.hashToID = make(map[[32]byte]uuid.UUID)
	m.usedMemory = 0
}

// UsedMemory reports current image memory usage in bytes.
func (m *ImageManager) UsedMemory() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.usedMemory
}

// pruneLocked evicts least-recently-accessed unreferenced images until
// usage is back under budget. Must be called with mu held.
func (m *ImageManager) pruneLocked() {
	referenced := make(map[uuid.UUID]bool, len(m.placements))
	for _, p := range m.placements {
		referenced[p.ImageID] = true
	}

	type candidate struct {
		id   uuid.UUID
		when time.Time
		size int64
	}
	var candidates []candidate
	for id, img := range m.images {
		if !referenced[id] {
			candidates = append(candidates, candidate{id, img.AccessedAt, int64(len(img.Data))})
		}
	}
	for i := 0; i < len(candidates)-1; i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].when.Before(candidates[i].when) {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}
	for _, c := range candidates {
		if m.usedMemory <= m.maxMemory {
			return
		}
		if img, ok := m.images[c.id]; ok {
			delete(m.hashToID, img.Hash)
			delete(m.images, c.id)
			m.usedMemory -= c.size
		}
	}
}

// timeNow is time.Now, indirected so callers that need reproducible
// golden output can be written without a flaky clock dependency.
var timeNow = time.Now
