package main

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/NewGoogleDrive/flashanimedit"
)

type options struct {
	Config    string `short:"c" long:"config"     description:"YAML config file"`
	Display   string `short:"d" long:"display"    description:"Display backend (sdl|kmsdrm|null)"`
	ExportDir string `short:"o" long:"export-dir" description:"Directory for exported archives"`
	Play      string `short:"p" long:"play"       description:"Play back a directory of exported frames instead of editing"`
	Verbose   bool   `short:"v" long:"verbose"    description:"Enable debug logging"`
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)

	if _, err := cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	}

	return opts
}

func loadConfig(opts options, log *logrus.Logger) flashanimedit.Config {
	cfg := flashanimedit.DefaultConfig()
	if opts.Config != "" {
		var err error
		cfg, err = flashanimedit.LoadConfig(opts.Config)
		if err != nil {
			log.WithError(err).Fatal("cannot load config")
		}
	}

	if opts.Display != "" {
		cfg.Display.Backend = opts.Display
	}
	if opts.ExportDir != "" {
		cfg.Export.Dir = opts.ExportDir
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	return cfg
}

func export(engine *flashanimedit.Engine, dir string, log *logrus.Logger) {
	if _, err := engine.ExportFile(dir); err != nil {
		log.WithError(err).Error("export failed")
		return
	}
	if err := engine.ExportAPNG(filepath.Join(dir, "animation.png")); err != nil {
		log.WithError(err).Warn("preview export failed")
	}
}

func run(engine *flashanimedit.Engine, cfg flashanimedit.Config, log *logrus.Logger) {
	palette := cfg.Brush.Palette

	for {
		event := sdl.WaitEvent()
		if event == nil {
			continue
		}

		switch e := event.(type) {
		case *sdl.QuitEvent:
			return

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				break
			}
			switch e.Type {
			case sdl.MOUSEBUTTONDOWN:
				if i, ok := engine.ThumbIndexAt(int(e.X), int(e.Y)); ok {
					engine.SelectFrame(i)
				} else {
					engine.PointerDown(int(e.X), int(e.Y))
				}
			case sdl.MOUSEBUTTONUP:
				engine.PointerUp()
			}

		case *sdl.MouseMotionEvent:
			engine.PointerMove(int(e.X), int(e.Y))

		case *sdl.WindowEvent:
			// Dragging out of the window ends the stroke, otherwise a
			// re-entering pointer would draw a segment from the stale
			// last point.
			if e.Event == sdl.WINDOWEVENT_LEAVE {
				engine.PointerUp()
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				break
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_q:
				return
			case sdl.K_SPACE:
				engine.TogglePlayback()
			case sdl.K_RIGHT:
				engine.NextFrame()
			case sdl.K_LEFT:
				engine.PrevFrame()
			case sdl.K_n:
				engine.AddFrame()
			case sdl.K_c:
				engine.CopyFrame()
			case sdl.K_s:
				engine.SaveFrame()
			case sdl.K_d:
				engine.DeleteFrame()
			case sdl.K_e:
				export(engine, cfg.Export.Dir, log)
			default:
				if e.Keysym.Sym >= sdl.K_1 && e.Keysym.Sym <= sdl.K_9 {
					i := int(e.Keysym.Sym - sdl.K_1)
					if i < len(palette) {
						engine.Session().SetColorHex(palette[i])
					}
				}
			}
		}
	}
}

// sortFrames orders exported frame files by their number, so frame10.png
// comes after frame9.png rather than after frame1.png. Files that do not
// match the frame<N>.png pattern sort lexicographically after the rest.
func sortFrames(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ni, iok := frameNumber(paths[i])
		nj, jok := frameNumber(paths[j])
		if iok && jok {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return paths[i] < paths[j]
	})
}

func frameNumber(path string) (int, bool) {
	name := strings.TrimSuffix(filepath.Base(path), ".png")
	if !strings.HasPrefix(name, "frame") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, "frame"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// play loads every PNG in dir into the frame store and loops forever,
// for showing an exported animation on a kiosk display.
func play(engine *flashanimedit.Engine, dir string, log *logrus.Logger) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil || len(paths) == 0 {
		log.WithField("dir", dir).Fatal("no frames to play")
	}
	sortFrames(paths)

	frames := make([]*flashanimedit.Surface, 0, len(paths))
	for _, path := range paths {
		surface, err := flashanimedit.LoadSurface(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Fatal("cannot load frame")
		}
		frames = append(frames, surface)
	}

	engine.LoadFrames(frames)
	engine.Play()
	log.WithField("frames", len(frames)).Info("playing")

	for {
		time.Sleep(time.Second)
	}
}

func main() {
	opts := parseCmd()

	log := logrus.New()
	cfg := loadConfig(opts, log)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	paintEngine, err := cfg.MakePaintEngine()
	if err != nil {
		log.WithError(err).Fatal("cannot create paint engine")
	}

	engine := flashanimedit.NewEngine(paintEngine, log)
	defer engine.Close()

	if err := engine.Session().SetColorHex(cfg.Brush.Color); err != nil {
		log.WithError(err).Fatal("invalid brush color")
	}

	if opts.Play != "" {
		play(engine, opts.Play, log)
	}

	if cfg.Display.Backend != "sdl" {
		log.Fatal("interactive editing requires the sdl display backend")
	}

	log.WithFields(logrus.Fields{
		"display": cfg.Display.Backend,
		"canvas":  "520x390",
	}).Info("editor started")

	run(engine, cfg, log)
}
