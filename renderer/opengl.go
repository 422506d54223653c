package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/achilleasa/horizon/scene"
	"github.com/achilleasa/horizon/tracer"
	"github.com/achilleasa/horizon/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/draw"
)

const (
	// Coefficients for converting delta cursor movements to yaw/pitch camera angles.
	mouseSensitivityX float32 = 0.005
	mouseSensitivityY float32 = 0.005

	// Camera movement speed
	cameraMoveSpeed float32 = 0.25

	// Dolly distance per mouse wheel tick.
	scrollMoveSpeed float32 = 0.5

	// Height in pixels for stacked series widgets
	stackedSeriesHeight uint32 = 20
)

// An interactive opengl-based renderer.
type interactiveGLRenderer struct {
	*defaultRenderer

	// opengl handles
	window    *glfw.Window
	fbTexture uint32
	texFbo    uint32

	// The window framebuffer size and a buffer for upscaling traced
	// frames to it.
	winW    uint32
	winH    uint32
	display *image.RGBA

	// Set by the framebuffer size callback and applied before the next frame.
	pendingResize bool

	// state
	lastCursorPos types.Vec2
	mousePressed  bool
	camera        *scene.Camera
	initialCamera scene.Camera

	// Display options
	showUI                bool
	blockAssignmentSeries *stackedSeries
}

// Create a new interactive opengl renderer using the specified block
// scheduler. It must be invoked from the main thread.
func NewInteractive(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if opts.Clock == nil {
		opts.Clock = NewWallClock()
	}
	opts.Supersample = 1

	base, err := newDefaultRenderer(sc, scheduler, nil, opts)
	if err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		defaultRenderer: base,
		camera:          sc.Camera,
		initialCamera:   *sc.Camera,
	}

	// Add an extra output step to copy frame data to an opengl texture
	r.postProcess = append(r.postProcess, r.copyFrameToTexture())

	err = r.initGL(opts)
	if err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
	r.defaultRenderer.Close()
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "horizon", nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %w", err)
	}
	r.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %w", err)
	}

	// Setup texture for image data and attach it to an FBO
	gl.GenTextures(1, &r.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenFramebuffers(1, &r.texFbo)

	// The framebuffer may be larger than the window on high-dpi displays
	fbW, fbH := r.window.GetFramebufferSize()
	r.onFramebufferSizeEvent(r.window, fbW, fbH)
	r.applyResize()

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetMouseButtonCallback(r.onMouseEvent)
	r.window.SetCursorPosCallback(r.onCursorPosEvent)
	r.window.SetScrollCallback(r.onScrollEvent)
	r.window.SetFramebufferSizeCallback(r.onFramebufferSizeEvent)

	return nil
}

// Render frames until the window is closed. Input callbacks run while
// polling for events, between frames, so camera and size changes never
// race with the tracers.
func (r *interactiveGLRenderer) Render() error {
	var frameIndex uint32
	for ; !r.window.ShouldClose(); frameIndex++ {
		glfw.PollEvents()
		if r.pendingResize {
			r.applyResize()
		}

		// Render next frame
		err := r.renderFrame(frameIndex)
		if err != nil {
			return err
		}

		r.output.Index = frameIndex
		r.output.Time = r.stats.Time
		r.buffers.downsample(1, &r.output)
		for _, stage := range r.postProcess {
			if _, err = stage(&r.output); err != nil {
				return err
			}
		}

		// Copy texture data to framebuffer. Image rows are stored top to
		// bottom so the blit flips the Y axis.
		w, h := int32(r.winW), int32(r.winH)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
		gl.BlitFramebuffer(0, 0, w, h, 0, h, w, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		// Display tracer stats
		if r.showUI {
			r.renderUI()
		}

		r.window.SwapBuffers()
	}
	return nil
}

// Returns an output stage that uploads the tonemapped frame to the
// display texture, upscaling it to the window size if required.
func (r *interactiveGLRenderer) copyFrameToTexture() OutputStage {
	return func(out *FrameOutput) (time.Duration, error) {
		start := time.Now()

		img := out.Image
		if img.Rect.Dx() != int(r.winW) || img.Rect.Dy() != int(r.winH) {
			draw.ApproxBiLinear.Scale(r.display, r.display.Bounds(), img, img.Bounds(), draw.Src, nil)
			img = r.display
		}

		gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(r.winW), int32(r.winH), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		return time.Since(start), nil
	}
}

// Resize the traced frame, the display buffers and the UI projection to
// match the current window framebuffer size.
func (r *interactiveGLRenderer) applyResize() {
	r.pendingResize = false

	traceW := uint32(float32(r.winW)*r.options.PixelRatio + 0.5)
	traceH := uint32(float32(r.winH)*r.options.PixelRatio + 0.5)
	r.resize(traceW, traceH)

	r.display = image.NewRGBA(image.Rect(0, 0, int(r.winW), int(r.winH)))

	gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(r.winW), int32(r.winH), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	r.initUI()
}

func (r *interactiveGLRenderer) initUI() {
	// Setup ortho projection for UI bits
	gl.Disable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(r.winW), float64(r.winH), 0, -1, 1)
	gl.Viewport(0, 0, int32(r.winW), int32(r.winH))
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	// Setup series
	r.blockAssignmentSeries = makeStackedSeries(len(r.tracers), int(r.winW))
}

func (r *interactiveGLRenderer) renderUI() {
	// Block heights are expressed in traced rows
	scale := float32(r.winH) / float32(r.frameH)

	var y float32 = 1
	var frameW = float32(r.winW) - 1
	gl.LineWidth(2.0)
	for seriesIndex, blockH := range r.blockAssignments {
		h := float32(blockH) * scale
		gl.Color3fv(&r.blockAssignmentSeries.colors[seriesIndex][0])
		gl.Begin(gl.LINE_LOOP)
		gl.Vertex2f(0, y)
		gl.Vertex2f(frameW, y)
		gl.Vertex2f(frameW, y+h)
		gl.Vertex2f(0, y+h)
		gl.End()

		y += h
	}

	for seriesIndex, blockH := range r.blockAssignments {
		r.blockAssignmentSeries.Append(seriesIndex, float32(blockH))
	}
	r.blockAssignmentSeries.Render(r.winH-stackedSeriesHeight, stackedSeriesHeight)
}

func (r *interactiveGLRenderer) onFramebufferSizeEvent(w *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized; keep the current size
		return
	}
	r.winW, r.winH = uint32(width), uint32(height)
	r.pendingResize = true
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	var moveDir scene.CameraDirection
	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
		return
	case glfw.KeyUp:
		moveDir = scene.Forward
	case glfw.KeyDown:
		moveDir = scene.Backward
	case glfw.KeyLeft:
		moveDir = scene.Left
	case glfw.KeyRight:
		moveDir = scene.Right
	case glfw.KeyR:
		*r.camera = r.initialCamera
		logger.Infof("reset camera: %s", r.camera)
		return
	case glfw.KeyTab:
		r.showUI = !r.showUI
		if r.showUI {
			r.blockAssignmentSeries.Clear()
		}
		return
	default:
		return
	}

	// Double speed if shift is pressed
	var speedScaler float32 = 1.0
	if (mods & glfw.ModShift) == glfw.ModShift {
		speedScaler = 2.0
	}
	r.camera.Move(moveDir, speedScaler*cameraMoveSpeed)
}

func (r *interactiveGLRenderer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	r.mousePressed = action == glfw.Press
	if r.mousePressed {
		xPos, yPos := w.GetCursorPos()
		r.lastCursorPos[0], r.lastCursorPos[1] = float32(xPos), float32(yPos)
	}
}

func (r *interactiveGLRenderer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	if !r.mousePressed {
		return
	}

	// Calculate delta movement and apply mouse sensitivity
	newPos := types.Vec2{float32(xPos), float32(yPos)}
	delta := r.lastCursorPos.Sub(newPos)
	delta[0] *= mouseSensitivityX
	delta[1] *= mouseSensitivityY
	r.lastCursorPos = newPos

	// Dragging orbits the camera around its look-at target
	r.camera.Orbit(delta[0], delta[1])
}

func (r *interactiveGLRenderer) onScrollEvent(w *glfw.Window, xOff, yOff float64) {
	if yOff > 0 {
		r.camera.Move(scene.Forward, scrollMoveSpeed)
	} else if yOff < 0 {
		r.camera.Move(scene.Backward, scrollMoveSpeed)
	}
}

type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(numSeries, histCount int) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, numSeries),
		colors: make([]types.Vec3, numSeries),
	}

	for sIndex := 0; sIndex < numSeries; sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
		s.colors[sIndex] = types.Vec3{rand.Float32(), rand.Float32(), 1.0}
	}

	return s
}

// Clear series
func (s *stackedSeries) Clear() {
	for sIndex := range s.series {
		s.series[sIndex] = make([]float32, len(s.series[sIndex]))
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	series := s.series[seriesIndex]
	if len(series) == 0 {
		return
	}
	copy(series, series[1:])
	series[len(series)-1] = val
}

func (s *stackedSeries) Render(rY, rHeight uint32) {
	if len(s.series) == 0 {
		return
	}

	gl.LineWidth(1.0)
	gl.Begin(gl.LINES)
	for x := 0; x < len(s.series[0]); x++ {
		var sum float32 = 0
		var scale float32 = 1.0
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sum += s.series[seriesIndex][x]
		}
		if sum > 0.0 {
			scale = float32(rHeight) / sum
		}

		var y = float32(rY)
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sH := s.series[seriesIndex][x] * scale
			gl.Color3fv(&s.colors[seriesIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y+sH)
			y += sH
		}
	}
	gl.End()
}
