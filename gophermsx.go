// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gophermsx/digest"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/gui/display"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/cpu/script"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/cartridge"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/vdp"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/renderer"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/modalflag"
	"github.com/jetsetilly/gophermsx/notifications"
	"github.com/jetsetilly/gophermsx/paths"
	"github.com/jetsetilly/gophermsx/performance"
	"github.com/jetsetilly/gophermsx/prefs"
	"github.com/jetsetilly/gophermsx/statsview"
	"github.com/jetsetilly/gophermsx/video/framebuffer"
	"golang.org/x/term"
)

const preferencesFile = "preferences"

// #mainthread
func main() {
	err := launch(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}
}

// launch parses the command line and runs the selected mode. the display
// window, if requested, is run in the calling goroutine so launch() should be
// called from the main thread.
func launch(args []string, output io.Writer) error {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)
	case "PERFORMANCE":
		err = perform(md, output)
	}

	if err != nil {
		return fmt.Errorf("%s mode: %w", md, err)
	}

	return nil
}

// flags common to all modes that create a machine
type machineFlags struct {
	spec      *string
	accuracy  *string
	minSkip   *int
	maxSkip   *int
	rom       *string
	script    *string
	prefs     *string
	log       *bool
	statsview *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	return &machineFlags{
		spec:      md.AddString("spec", "NTSC", "video specification: NTSC, PAL"),
		accuracy:  md.AddString("accuracy", "line", "renderer accuracy: pixel, line, screen"),
		minSkip:   md.AddInt("minskip", 0, "minimum number of frames to skip between drawn frames"),
		maxSkip:   md.AddInt("maxskip", 3, "maximum number of frames to skip between drawn frames"),
		rom:       md.AddString("rom", "", "Konami banked ROM file to insert in slot 1"),
		script:    md.AddString("script", "", "Lua script to drive the CPU"),
		prefs:     md.AddString("prefs", "", "preference overrides. eg. \"render.deinterlace::false; hardware.spec::PAL\""),
		log:       md.AddBool("log", false, "echo log to stdout"),
		statsview: md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", availableString(statsview.Available()))),
	}
}

func availableString(ok bool) string {
	if ok {
		return "available"
	}
	return "not available in this build"
}

// the label used to name output files
func (mf *machineFlags) label() string {
	if *mf.rom == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(*mf.rom), filepath.Ext(*mf.rom))
}

// apply the logging and statsview flags
func (mf *machineFlags) ambient(output io.Writer) {
	if *mf.log {
		if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logger.SetEcho(logger.NewColorizer(output), false)
		} else {
			logger.SetEcho(output, false)
		}
	} else {
		logger.SetEcho(nil, false)
	}

	if *mf.statsview {
		if statsview.Available() {
			statsview.Launch(output)
		} else {
			logger.Log(logger.Allow, "gophermsx", "statsview not available in this build")
		}
	}
}

// create preferences from disk, the -prefs override string and the explicit
// command line flags, in that order of precedence
func (mf *machineFlags) preferences(md *modalflag.Modes) (*preferences.Preferences, error) {
	pth, err := paths.ResourcePath("", preferencesFile)
	if err != nil {
		return nil, err
	}

	prefs.PushCommandLineStack(*mf.prefs)
	p, err := preferences.NewPreferences(pth)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "gophermsx", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	if md.IsSet("spec") {
		if err := p.Spec.Set(*mf.spec); err != nil {
			return nil, err
		}
	}
	if md.IsSet("accuracy") {
		if err := p.Accuracy.Set(*mf.accuracy); err != nil {
			return nil, err
		}
	}
	if md.IsSet("minskip") {
		if err := p.MinFrameSkip.Set(*mf.minSkip); err != nil {
			return nil, err
		}
	}
	if md.IsSet("maxskip") {
		if err := p.MaxFrameSkip.Set(*mf.maxSkip); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// config creates the machine configuration: 64k of RAM in slot 0, the optional
// cartridge in slot 1 and the optional scripted CPU
func (mf *machineFlags) config(env *environment.Environment, realTime bool) (hardware.Config, error) {
	cfg := hardware.Config{
		RealTime: realTime,
	}

	mem, err := ram.NewRAM(env, "RAM", 0x0000, 0x10000)
	if err != nil {
		return cfg, err
	}
	cfg.Devices = append(cfg.Devices, hardware.DeviceConfig{Slot: 0, Origin: 0x0000, Memtop: 0xffff, Device: mem})

	if *mf.rom != "" {
		data, err := os.ReadFile(*mf.rom)
		if err != nil {
			return cfg, err
		}
		cart, err := cartridge.NewKonami(data)
		if err != nil {
			return cfg, err
		}
		cfg.Devices = append(cfg.Devices, hardware.DeviceConfig{Slot: 1, Origin: 0x4000, Memtop: 0xbfff, Device: cart})
	}

	if *mf.script != "" {
		filename := *mf.script
		cfg.CPU = func(mem cpu.Bus) (cpu.Driver, error) {
			return script.NewDriverFromFile(mem, filename)
		}
	}

	return cfg, nil
}

func (mf *machineFlags) newMachine(md *modalflag.Modes, notify notifications.Notify, sink *framebuffer.Sink, realTime bool) (*hardware.Machine, error) {
	p, err := mf.preferences(md)
	if err != nil {
		return nil, err
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, p, notify)
	if err != nil {
		return nil, err
	}

	cfg, err := mf.config(env, realTime)
	if err != nil {
		return nil, err
	}

	return hardware.NewMachine(env, cfg, sink)
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	mf := addMachineFlags(md)
	frames := md.AddInt("frames", 0, "number of frames to run for. zero to run until interrupted")
	showDigest := md.AddBool("digest", false, "print the video digest when the emulation ends")
	showDisplay := md.AddBool("display", false, "open a window showing the emulation")
	scale := md.AddFloat64("scale", 2.0, "scaling of the window and the png output")
	smooth := md.AddBool("smooth", false, "use smooth scaling")
	savePNG := md.AddBool("png", false, "save the last frame as a png file")
	saveGraph := md.AddBool("memviz", false, "save a graphviz file of the machine state when the emulation ends")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	mf.ambient(output)

	counter := &notifications.Counter{}
	sink := framebuffer.NewSink(4)

	m, err := mf.newMachine(md, counter, sink, *showDisplay)
	if err != nil {
		return err
	}
	defer m.End()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	vd := digest.NewVideo()
	var last framebuffer.Frame

	var disp *display.Display
	var dispFrames chan framebuffer.Frame
	if *showDisplay {
		dispFrames = make(chan framebuffer.Frame, 2)
		disp = display.NewDisplay(dispFrames, *scale, *smooth)
	}

	// set when the emulation must end regardless of the other conditions
	var halt atomic.Bool

	// frames are consumed in the emulation goroutine before every frame
	continueCheck := func() bool {
	drain:
		for {
			select {
			case f := <-sink.Frames:
				vd.AddImage(f.Image)
				last = f
				if dispFrames != nil {
					select {
					case dispFrames <- f:
					default:
					}
				}
			default:
				break drain
			}
		}

		if halt.Load() {
			return false
		}

		select {
		case <-ctx.Done():
			return false
		default:
		}

		if disp != nil {
			select {
			case <-disp.Done():
				return false
			default:
			}
		}

		return *frames <= 0 || m.FrameNum() < *frames
	}

	if disp != nil {
		err := runAlongside(func() error {
			defer disp.Stop()
			return m.Run(continueCheck)
		}, func() error {
			return disp.Run(fmt.Sprintf("gophermsx %s", mf.label()))
		}, &halt)
		if err != nil {
			return err
		}
	} else {
		if *frames <= 0 && !*showDigest {
			logger.Log(logger.Allow, "gophermsx", "running until interrupted")
		}
		if err := m.Run(continueCheck); err != nil {
			return err
		}
	}

	// frames finished by the final call to RunFrame()
	if f, ok := vd.Drain(sink.Frames); ok {
		last = f
	}

	logger.Logf(logger.Allow, "gophermsx", "%d frames (%d skipped, %d dropped)", counter.Frames, counter.Skipped, sink.Dropped())

	if *showDigest {
		fmt.Fprintln(output, vd.Hash())
	}

	if *savePNG {
		if last.Image == nil {
			return fmt.Errorf("no frame to save")
		}
		fn := fmt.Sprintf("%s.png", paths.UniqueFilename("frame", mf.label()))
		if err := writePNG(fn, last.Image, *scale, *smooth); err != nil {
			return err
		}
		fmt.Fprintf(output, "frame %d saved to %s\n", last.Number, fn)
	}

	if *saveGraph {
		fn := fmt.Sprintf("%s.dot", paths.UniqueFilename("snapshot", mf.label()))
		if err := writeGraph(fn, newGraphView(m.Snapshot())); err != nil {
			return err
		}
		fmt.Fprintf(output, "machine state saved to %s\n", fn)
	}

	return nil
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	mf := addMachineFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "run emulation for duration")
	profile := md.AddString("profile", "none", "create profiling data: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	mf.ambient(output)

	// no consumer of frames. finished frames are dropped by the sink
	m, err := mf.newMachine(md, nil, framebuffer.NewSink(1), false)
	if err != nil {
		return err
	}
	defer m.End()

	return performance.Check(output, prf, m, *duration)
}

// runAlongside runs the emulation in a new goroutine and the front end in the
// calling goroutine. if the front end fails the emulation is halted and waited
// for before the error is returned
func runAlongside(emulation func() error, frontend func() error, halt *atomic.Bool) error {
	runErr := make(chan error, 1)
	go func() {
		runErr <- emulation()
	}()

	if err := frontend(); err != nil {
		halt.Store(true)
		<-runErr
		return err
	}

	// the front end may have finished before the emulation has noticed
	return <-runErr
}

func writePNG(filename string, img *image.RGBA, scale float64, smooth bool) error {
	if scale < 1.0 {
		scale = 1.0
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	framebuffer.Scale(dst, img, smooth)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// graphView is the part of the machine state that is written by the -memviz
// flag. the contents of RAM and VRAM are left out
type graphView struct {
	CPUTime   clocks.Time
	FrameNum  int
	Mem       *memory.State
	Registers [vdp.NumRegisters]uint8
	Palette   [mode.PaletteEntries][3]uint8
	Timing    renderer.FrameTiming
}

func newGraphView(state *hardware.State) *graphView {
	return &graphView{
		CPUTime:  state.CPUTime,
		FrameNum: state.FrameNum,
		Mem: &memory.State{
			Primary: state.Mem.Primary,
			Banks:   state.Mem.Banks,
		},
		Registers: state.VDP.Registers,
		Palette:   state.VDP.Palette,
		Timing:    state.VDP.Timing,
	}
}

func writeGraph(filename string, view *graphView) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	memviz.Map(f, view)

	return f.Close()
}
