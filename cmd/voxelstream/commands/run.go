package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxelstream/voxelstream/internal/config"
	"github.com/voxelstream/voxelstream/internal/logging"
	"github.com/voxelstream/voxelstream/pkg/external"
	"github.com/voxelstream/voxelstream/pkg/glrender"
	"github.com/voxelstream/voxelstream/pkg/persistence"
	"github.com/voxelstream/voxelstream/pkg/voxel"
	"github.com/voxelstream/voxelstream/pkg/world"
)

var (
	headless      bool
	windowWidth   int
	windowHeight  int
	spawnDistance int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the voxel world engine",
	Long: `Run loads configuration, opens a world at its configured save
directory, and drives the streaming loop around a viewer.

With --headless, no window is created and the viewer stays fixed (in the
origin chunk, or --spawn-chunks chunks along X): useful for exercising
generation and persistence without a GPU.

Examples:
  voxelstream run
  voxelstream run --headless
  voxelstream run --config ./voxelstream.yaml`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "run without a window, using the null renderer/collider")
	runCmd.Flags().IntVar(&windowWidth, "width", 1280, "window width (ignored with --headless)")
	runCmd.Flags().IntVar(&windowHeight, "height", 720, "window height (ignored with --headless)")
	runCmd.Flags().IntVar(&spawnDistance, "spawn-chunks", 0, "chunk coordinates to seed the headless viewer at along X (diagnostic)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.LogFormat)
	log.Info("configuration loaded", "chunk_size_xz", cfg.ChunkSizeXZ, "chunk_size_y", cfg.ChunkSizeY,
		"render_distance_xz", cfg.RenderDistanceXZ, "render_distance_y", cfg.RenderDistanceY)

	var store *persistence.Store
	if cfg.AutoSaveChunks || cfg.SaveDirectory != "" {
		store, err = persistence.New(cfg.SaveDirectory, cfg.CompressChunks, persistence.OSFileSystem{}, log)
		if err != nil {
			return fmt.Errorf("open save directory: %w", err)
		}
		if err := store.EnsureDir(); err != nil {
			return err
		}
		defer store.Close()
	}

	if headless {
		return runHeadless(cfg, store, log)
	}
	return runWindowed(cfg, store, log)
}

func runHeadless(cfg config.Config, store *persistence.Store, log *slog.Logger) error {
	var colliderFactory world.ColliderFactory
	if cfg.GenerateCollision {
		colliderFactory = func(voxel.ChunkCoord) external.ColliderHandle { return external.NullCollider{} }
	}

	w := world.New(cfg,
		func(voxel.ChunkCoord) external.RendererHandle { return external.NullRenderer{} },
		colliderFactory,
		voxel.DemoPalette,
		store,
		log,
	)
	defer w.Close()

	w.Subscribe(func(e world.Event) {
		log.Debug("event", "kind", e.Kind.String(), "chunk", e.Chunk)
	})

	w.SetViewerPosition([3]float64{float64(spawnDistance) * float64(cfg.ChunkSizeXZ), 64, 0})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info("running headless, press Ctrl+C to stop")
	for {
		w.Tick()
		select {
		case <-sigCh:
			log.Info("shutdown signal received")
			w.Clear()
			return nil
		default:
		}
		if w.QueueLen() == 0 {
			log.Info("generation queue drained, resident chunks stable", "resident", w.ResidentCount())
			<-sigCh
			w.Clear()
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

func runWindowed(cfg config.Config, store *persistence.Store, log *slog.Logger) error {
	app, err := glrender.NewApp(windowWidth, windowHeight, "voxelstream", cfg.VSync)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer app.Close()

	dims := voxel.Dims{X: cfg.ChunkSizeXZ, Y: cfg.ChunkSizeY, Z: cfg.ChunkSizeXZ}

	var colliderFactory world.ColliderFactory
	if cfg.GenerateCollision {
		colliderFactory = func(voxel.ChunkCoord) external.ColliderHandle { return external.NullCollider{} }
	}

	w := world.New(cfg, app.RendererFactory(dims), colliderFactory, voxel.DemoPalette, store, log)
	defer w.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for !app.ShouldClose() {
		select {
		case <-sigCh:
			w.Clear()
			return nil
		default:
		}

		dt := app.BeginFrame()
		app.Camera.ProcessKeyboardInput(float32(dt), app.Window)

		pos := app.Camera.ViewerPosition()
		w.SetViewerPosition(pos)
		w.Tick()

		app.DrawChunks()
		app.EndFrame()
	}

	w.Clear()
	return nil
}
