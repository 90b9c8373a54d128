// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/application/render"
	"github.com/younwookim/tilebound/internal/application/replay"
	"github.com/younwookim/tilebound/internal/application/scene"
	"github.com/younwookim/tilebound/internal/application/session"
	"github.com/younwookim/tilebound/internal/application/state"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/ecs"
)

// Colors for rendering
var (
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
	colorPause    = color.RGBA{0, 0, 0, 128}
	colorGameOver = color.RGBA{100, 0, 0, 180}
)

// overlayKeys toggles the debug layers in render.Overlays order
var overlayKeys = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6}

// finisher is implemented by sources that run out, such as a replay
type finisher interface {
	Done() bool
}

// resetter is implemented by sources that can rewind on restart
type resetter interface {
	Reset()
}

// Playing is the main gameplay scene
type Playing struct {
	session  *session.Session
	source   input.Source
	state    state.GameState
	renderer *render.Renderer
	camera   *render.Camera
	screenW  int
	screenH  int
	log      *zap.Logger

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
	level          string
}

// New creates a new Playing scene over s, reading input from src (the
// keyboard when nil). If recordPath is not empty, gameplay is recorded.
func New(s *session.Session, src input.Source, level, recordPath string, log *zap.Logger) *Playing {
	if src == nil {
		src = Keyboard{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	display := s.Config().Tuning.Display
	cam := render.NewCamera(float64(display.ScreenWidth), float64(display.ScreenHeight))

	p := &Playing{
		session:        s,
		source:         src,
		state:          state.StatePlaying,
		renderer:       render.NewRenderer(cam, s.Sim().Settings().Patrol),
		camera:         cam,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		log:            log,
		recordFilename: recordPath,
		level:          level,
	}

	if recordPath != "" {
		p.recorder = replay.NewRecorder(level, display.Framerate)
		log.Info("recording enabled", zap.String("file", recordPath))
	}

	cam.Follow(s.World())
	return p
}

// State returns the current game state
func (p *Playing) State() state.GameState {
	return p.state
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	for i, k := range overlayKeys {
		if inpututil.IsKeyJustPressed(k) {
			p.renderer.Toggle(render.Overlays[i])
		}
	}

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePaused
			return nil, nil
		}
		// F8: Save recording manually
		if inpututil.IsKeyJustPressed(ebiten.KeyF8) && p.recorder != nil {
			p.saveRecording()
		}
		if err := p.step(); err != nil {
			return nil, err
		}
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

// step advances the session by one frame
func (p *Playing) step() error {
	if f, ok := p.source.(finisher); ok && f.Done() {
		p.state = state.StateGameOver
		p.session.LogSummary("replay finished")
		return nil
	}

	in := p.source.Poll()
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	report, err := p.session.Step(in)
	if err != nil {
		return err
	}
	if report.PlayerDied {
		p.log.Info("player died", zap.Int("frame", p.session.Stats().Frames))
	}

	p.camera.Follow(p.session.World())
	return nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.log.Error("failed to save recording", zap.Error(err))
		return
	}
	p.log.Info("recording saved", zap.String("file", filename), zap.Int("frames", p.recorder.FrameCount()))
}

func (p *Playing) restart() error {
	if err := p.session.Reset(); err != nil {
		return err
	}
	if r, ok := p.source.(resetter); ok {
		r.Reset()
	}
	if p.recordFilename != "" {
		p.recorder = replay.NewRecorder(p.level, p.session.Config().Tuning.Display.Framerate)
		p.log.Info("recording restarted")
	}
	p.camera.Follow(p.session.World())
	p.state = state.StatePlaying
	return nil
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(render.ColorBG)

	p.renderer.Draw(p.session.World(), p.session.Sim().AllContacts(), screenCanvas{screen: screen})
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	if id, ok := p.session.Player(); ok {
		if hp, ok := ecs.TryGet[ecs.Health](p.session.World(), id); ok && hp.Max > 0 {
			ratio := float64(hp.Current) / float64(hp.Max)
			ebitenutil.DrawRect(screen, barX, barY, barW*ratio, barH, colorHealthFG)
		}
	}

	stats := p.session.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Kills: %d  Deaths: %d", stats.Kills, stats.Deaths), 10, p.screenH-35)

	if !p.renderer.Enabled(render.OverlayInfo) {
		ebitenutil.DebugPrint(screen, "A/D: Move | W: Jump | J: Attack | F1-F6: Debug | ESC: Pause")
	}
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorPause)
	ebitenutil.DebugPrintAt(screen, "PAUSED\n\nESC resume  Q quit", p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorGameOver)

	stats := p.session.Stats()
	text := fmt.Sprintf("REPLAY OVER\n\nFrames: %d  Kills: %d\n\nZ restart  Q quit", stats.Frames, stats.Kills)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit is called when leaving this scene. Pending recordings are saved.
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.FrameCount() > 0 {
		p.saveRecording()
		p.recorder.Stop()
	}
}
