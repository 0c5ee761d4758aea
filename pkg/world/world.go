// Package world implements C4: the chunk table, viewer-centric streaming
// window, generation FIFO queue, and mutation routing that ties the block
// array, the greedy mesher, and persistence together.
package world

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/voxelstream/voxelstream/internal/config"
	"github.com/voxelstream/voxelstream/pkg/external"
	"github.com/voxelstream/voxelstream/pkg/persistence"
	"github.com/voxelstream/voxelstream/pkg/voxel"
)

// RendererFactory and ColliderFactory build a fresh handle for a chunk at
// the given position, invoked lazily on that chunk's first mesh emission.
type RendererFactory func(pos voxel.ChunkCoord) external.RendererHandle
type ColliderFactory func(pos voxel.ChunkCoord) external.ColliderHandle

// World owns every resident chunk, the generation queue, and the viewer
// tracking that drives streaming. It is not safe for concurrent use from
// multiple goroutines, except that EventChunkSaved may be delivered to
// listeners from the background save worker (see Subscribe).
type World struct {
	dims voxel.Dims
	cfg  config.Config

	chunks map[voxel.ChunkCoord]*voxel.Chunk

	queue     []voxel.ChunkCoord
	queuedSet map[voxel.ChunkCoord]bool

	hasViewer   bool
	viewerChunk voxel.ChunkCoord

	rendererFactory RendererFactory
	colliderFactory ColliderFactory
	colorOf         voxel.BlockColorFunc

	store *persistence.Store

	log *slog.Logger

	eventMu   sync.Mutex
	listeners []Listener

	saveCh chan saveJob
	saveWG sync.WaitGroup
}

type saveJob struct {
	pos  voxel.ChunkCoord
	data []byte
}

// New builds a World. store may be nil, in which case no chunk ever hits
// persistence: every creation enqueues for generation and no unload ever
// saves. colliderFactory may be nil when collision is disabled.
func New(cfg config.Config, rendererFactory RendererFactory, colliderFactory ColliderFactory, colorOf voxel.BlockColorFunc, store *persistence.Store, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	w := &World{
		dims:            voxel.Dims{X: cfg.ChunkSizeXZ, Y: cfg.ChunkSizeY, Z: cfg.ChunkSizeXZ},
		cfg:             cfg,
		chunks:          make(map[voxel.ChunkCoord]*voxel.Chunk),
		queuedSet:       make(map[voxel.ChunkCoord]bool),
		rendererFactory: rendererFactory,
		colliderFactory: colliderFactory,
		colorOf:         colorOf,
		store:           store,
		log:             log.With("component", "world"),
	}

	if cfg.AutoSaveChunks && store != nil {
		w.saveCh = make(chan saveJob, 64)
		w.saveWG.Add(1)
		go w.saveWorker()
	}

	return w
}

func (w *World) saveWorker() {
	defer w.saveWG.Done()
	for job := range w.saveCh {
		if err := w.store.SaveBytes(job.pos, job.data); err != nil {
			w.log.Error("background save failed", "chunk", job.pos, "err", err)
			continue
		}
		w.emit(Event{Kind: EventChunkSaved, Chunk: job.pos})
	}
}

// Close drains the background save worker (if any) and releases the
// persistence store's resources. Every save dispatched before Close is
// returns completes before Close returns.
func (w *World) Close() {
	if w.saveCh != nil {
		close(w.saveCh)
		w.saveWG.Wait()
	}
	if w.store != nil {
		w.store.Close()
	}
}

// Dims returns the configured chunk dimensions.
func (w *World) Dims() voxel.Dims { return w.dims }

// ResidentCount returns the number of chunks currently in the table.
func (w *World) ResidentCount() int { return len(w.chunks) }

// QueueLen returns the number of positions currently waiting in the
// generation queue.
func (w *World) QueueLen() int { return len(w.queue) }

// IsResident reports whether c is currently in the chunk table.
func (w *World) IsResident(c voxel.ChunkCoord) bool {
	_, ok := w.chunks[c]
	return ok
}

// Chunk returns the resident chunk at c, if any.
func (w *World) Chunk(c voxel.ChunkCoord) (*voxel.Chunk, bool) {
	ch, ok := w.chunks[c]
	return ch, ok
}

// BlockAt implements voxel.WorldAccessor: a read-through accessor the
// mesher uses for cross-chunk face culling. Non-resident chunks read as
// all-air.
func (w *World) BlockAt(world [3]int32) voxel.Block {
	c := voxel.WorldToChunk(world, w.dims)
	chunk, ok := w.chunks[c]
	if !ok {
		return voxel.Air
	}
	return chunk.GetBlock(voxel.WorldToLocal(world, w.dims))
}

// InRange reports whether chunk c is within the residency window of
// viewer chunk v, per the horizontal-Euclidean / vertical-absolute test.
func InRange(c, v voxel.ChunkCoord, rxz, ry int) bool {
	dx := float64(c.X - v.X)
	dz := float64(c.Z - v.Z)
	if math.Sqrt(dx*dx+dz*dz) > float64(rxz) {
		return false
	}
	dy := int(c.Y - v.Y)
	if dy < 0 {
		dy = -dy
	}
	return dy <= ry
}

func (w *World) inRangeOfViewer(c voxel.ChunkCoord) bool {
	if !w.hasViewer {
		return false
	}
	return InRange(c, w.viewerChunk, w.cfg.RenderDistanceXZ, w.cfg.RenderDistanceY)
}

// SetViewerPosition updates the viewer's world-space position. If the
// derived chunk coordinate differs from the last one observed, a
// streaming pass runs synchronously.
func (w *World) SetViewerPosition(pos [3]float64) {
	worldBlock := [3]int32{
		int32(math.Floor(pos[0])),
		int32(math.Floor(pos[1])),
		int32(math.Floor(pos[2])),
	}
	v := voxel.WorldToChunk(worldBlock, w.dims)
	if w.hasViewer && v == w.viewerChunk {
		return
	}
	w.runStreamingPass(v)
}

// runStreamingPass computes the to-load and to-unload sets for viewer
// chunk v and applies them. The to-load set is sorted by ascending
// squared distance from v so nearer chunks are created (and thus
// enqueued) first.
func (w *World) runStreamingPass(v voxel.ChunkCoord) {
	w.hasViewer = true
	w.viewerChunk = v

	rxz := w.cfg.RenderDistanceXZ
	ry := w.cfg.RenderDistanceY
	rxzSq := rxz * rxz

	type candidate struct {
		pos    voxel.ChunkCoord
		distSq int
	}
	var toLoad []candidate
	for dx := -rxz; dx <= rxz; dx++ {
		for dz := -rxz; dz <= rxz; dz++ {
			distSq := dx*dx + dz*dz
			if distSq > rxzSq {
				continue
			}
			for dy := -ry; dy <= ry; dy++ {
				c := voxel.ChunkCoord{X: v.X + int32(dx), Y: v.Y + int32(dy), Z: v.Z + int32(dz)}
				if _, ok := w.chunks[c]; ok {
					continue
				}
				toLoad = append(toLoad, candidate{pos: c, distSq: distSq})
			}
		}
	}
	sort.Slice(toLoad, func(i, j int) bool { return toLoad[i].distSq < toLoad[j].distSq })

	var toUnload []voxel.ChunkCoord
	for c := range w.chunks {
		if !InRange(c, v, rxz, ry) {
			toUnload = append(toUnload, c)
		}
	}

	for _, c := range toUnload {
		w.unloadChunk(c)
	}
	for _, cand := range toLoad {
		w.createChunk(cand.pos)
	}
}

// createChunk allocates a chunk at pos, registers it, and consults
// persistence: on hit it deserializes and synchronously meshes, emitting
// chunk_loaded and chunk_mesh_generated; on miss it enqueues pos for
// generation.
func (w *World) createChunk(pos voxel.ChunkCoord) *voxel.Chunk {
	var rf func() external.RendererHandle
	if w.rendererFactory != nil {
		rf = func() external.RendererHandle { return w.rendererFactory(pos) }
	}
	var cf func() external.ColliderHandle
	if w.colliderFactory != nil {
		cf = func() external.ColliderHandle { return w.colliderFactory(pos) }
	}

	chunk := voxel.NewChunk(pos, w.dims, rf, cf)
	w.chunks[pos] = chunk

	if w.store != nil {
		hit, err := w.store.Load(chunk)
		if err != nil {
			w.log.Error("load chunk failed", "chunk", pos, "err", err)
		}
		if hit {
			chunk.GenerateMesh(w, w.colorOf)
			w.emit(Event{Kind: EventChunkLoaded, Chunk: pos})
			w.emit(Event{Kind: EventChunkMeshGenerated, Chunk: pos})
			return chunk
		}
	}

	w.enqueue(pos)
	return chunk
}

func (w *World) enqueue(pos voxel.ChunkCoord) {
	if w.queuedSet[pos] {
		return
	}
	w.queuedSet[pos] = true
	w.queue = append(w.queue, pos)
}

// unloadChunk persists (if configured) the chunk's current bytes as a
// snapshot taken before cleanup, releases its handles, and removes it
// from the table.
func (w *World) unloadChunk(pos voxel.ChunkCoord) {
	chunk, ok := w.chunks[pos]
	if !ok {
		return
	}

	if w.cfg.AutoSaveChunks && w.store != nil && chunk.IsModified() {
		data := chunk.Serialize()
		if w.saveCh != nil {
			w.saveCh <- saveJob{pos: pos, data: data}
		} else if err := w.store.SaveBytes(pos, data); err != nil {
			w.log.Error("save failed", "chunk", pos, "err", err)
		} else {
			w.emit(Event{Kind: EventChunkSaved, Chunk: pos})
		}
	}

	chunk.Cleanup()
	delete(w.chunks, pos)
	delete(w.queuedSet, pos)
	w.emit(Event{Kind: EventChunkUnloaded, Chunk: pos})
}

// Tick drains up to MaxChunksPerFrame positions from the generation
// queue (0 means unbounded), meshing each still-resident chunk and
// emitting chunk_loaded and chunk_mesh_generated. Positions whose chunks
// were unloaded between enqueue and drain are silently discarded
// (QueueOrphan).
func (w *World) Tick() {
	perTick := w.cfg.MaxChunksPerFrame
	drained := 0
	for len(w.queue) > 0 && (perTick == 0 || drained < perTick) {
		pos := w.queue[0]
		w.queue = w.queue[1:]
		delete(w.queuedSet, pos)

		chunk, ok := w.chunks[pos]
		if !ok {
			continue
		}
		chunk.GenerateMesh(w, w.colorOf)
		w.emit(Event{Kind: EventChunkLoaded, Chunk: pos})
		w.emit(Event{Kind: EventChunkMeshGenerated, Chunk: pos})
		drained++
	}
}

// Clear drains the generation queue and unloads every resident chunk
// (saving first, if auto-save is enabled). It is synchronous and is the
// only way to cancel pending generation.
func (w *World) Clear() {
	w.queue = nil
	w.queuedSet = make(map[voxel.ChunkCoord]bool)

	positions := make([]voxel.ChunkCoord, 0, len(w.chunks))
	for c := range w.chunks {
		positions = append(positions, c)
	}
	for _, c := range positions {
		w.unloadChunk(c)
	}
}
