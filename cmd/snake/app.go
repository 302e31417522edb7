package main

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/audio"
	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/engine"
	"github.com/trytobebee/snake_deluxe/pkg/game"
	"github.com/trytobebee/snake_deluxe/pkg/highscore"
	"github.com/trytobebee/snake_deluxe/pkg/input"
	"github.com/trytobebee/snake_deluxe/pkg/renderer"
)

// Main menu entries, matching renderer.MenuItems
const (
	menuPlay = iota
	menuInstructions
	menuHighscores
	menuQuit
)

// app drives the menu, a run and the highscore flow
type app struct {
	cfg     config.RuntimeConfig
	render  renderer.Renderer
	presses <-chan input.Press
	store   highscore.Store // nil when storage could not be opened
	sound   *audio.SoundManager
}

func (a *app) run() {
	for {
		switch a.menu() {
		case menuPlay:
			a.play()
		case menuInstructions:
			a.page(renderer.View{Page: renderer.PageInstructions})
		case menuHighscores:
			a.showHighscores()
		case menuQuit:
			return
		}
	}
}

// menu returns the chosen entry
func (a *app) menu() int {
	selected := 0
	n := len(renderer.MenuItems)
	for {
		a.render.RenderScreen(renderer.View{Page: renderer.PageMenu, Selected: selected})
		p, ok := <-a.presses
		if !ok {
			return menuQuit
		}
		switch p.Command() {
		case game.CmdUp:
			selected = (selected - 1 + n) % n
		case game.CmdDown:
			selected = (selected + 1) % n
		case game.CmdResume:
			return selected
		case game.CmdQuit:
			return menuQuit
		}
	}
}

// page shows a static page until any key
func (a *app) page(v renderer.View) {
	for {
		a.render.RenderScreen(v)
		p, ok := <-a.presses
		if !ok || p.Key != input.KeyResize {
			return
		}
	}
}

func (a *app) topScores() []highscore.Entry {
	if a.store == nil {
		return nil
	}
	top, err := a.store.Top(config.HighscoreLimit)
	if err != nil {
		log.Printf("Failed to load highscores: %v", err)
	}
	return top
}

func (a *app) showHighscores() {
	a.page(renderer.View{Page: renderer.PageHighscores, Highscores: a.topScores()})
}

// play runs one game from start to the highscore table
func (a *app) play() {
	g, err := game.New(a.cfg.Width, a.cfg.Height, game.WithSeed(a.cfg.Seed))
	if err != nil {
		log.Printf("Failed to start game: %v", err)
		return
	}

	manual := &game.ManualController{}
	var ctrl game.Controller = manual
	if a.cfg.AutoPlay {
		ctrl = game.NewAutopilotController(game.NewRand(a.cfg.Seed))
	}

	var rec *game.GameRecorder
	if a.cfg.Record {
		if rec, err = game.NewRecorder("records"); err != nil {
			log.Printf("Recording disabled: %v", err)
		} else {
			log.Printf("Recording session %s to %s", rec.SessionID, rec.Path)
			defer func() {
				if err := rec.Close(); err != nil {
					log.Printf("Failed to close recording: %v", err)
				}
				if n := rec.Dropped(); n > 0 {
					log.Printf("Recording dropped %d steps", n)
				}
			}()
		}
	}

	// The scheduler reads the interval from its own goroutine
	var interval atomic.Int64
	interval.Store(int64(g.CurrentTickInterval()))
	sched := engine.NewScheduler(func() time.Duration {
		return time.Duration(interval.Load())
	})
	sched.Start()
	defer sched.Stop()

	a.render.Render(g.Snapshot())

	for !g.Phase.Terminal() {
		select {
		case p, ok := <-a.presses:
			if !ok {
				g.Quit()
				break
			}
			a.handlePress(g, manual, sched, p)

		case <-sched.Ticks():
			var queued *game.Direction
			if d, ok := ctrl.NextDirection(g.Snapshot()); ok {
				queued = &d
			}
			snap, err := g.Tick(queued)
			if err != nil {
				var lge *game.LevelGenerationError
				if errors.As(err, &lge) {
					log.Printf("Ending run: %v", err)
					g.Quit()
					snap = g.Snapshot()
				} else {
					log.Printf("Tick failed: %v", err)
				}
			}
			interval.Store(int64(g.CurrentTickInterval()))
			if rec != nil {
				rec.RecordStep(game.StepRecord{Tick: int(sched.TickCount()), Snapshot: snap})
			}
			a.sound.PlayEvents(snap.Events)
			a.render.Render(snap)
		}
	}
	sched.Stop()

	final := g.Snapshot()
	log.Printf("Run over: phase=%s cause=%q score=%d level=%d moves=%d", final.Phase, final.CrashCause, final.Score, final.Level, final.Stats.MovesMade)
	a.render.Render(final)
	a.waitContinue()
	a.recordScore(final.Score, final.Level)
}

func (a *app) handlePress(g *game.Game, manual *game.ManualController, sched *engine.Scheduler, p input.Press) {
	if p.Key == input.KeyResize {
		a.render.Render(g.Snapshot())
		return
	}

	cmd := p.Command()
	if d, ok := cmd.Direction(); ok {
		if g.Phase == game.Running {
			manual.SetDirection(d)
		}
		return
	}
	if cmd == game.CmdNone {
		return
	}

	if err := g.HandleCommand(cmd); err != nil {
		log.Printf("Ignored command: %v", err)
		return
	}
	if g.Phase == game.Paused {
		sched.Pause()
	} else {
		sched.Resume()
	}
	a.render.Render(g.Snapshot())
}

// waitContinue blocks until Enter or a quit key
func (a *app) waitContinue() {
	for p := range a.presses {
		switch p.Command() {
		case game.CmdResume, game.CmdQuit:
			return
		}
	}
}

// recordScore asks for a name when the score makes the table, then shows it
func (a *app) recordScore(score, level int) {
	if a.store == nil {
		return
	}
	if highscore.Qualifies(a.topScores(), score) {
		if name, ok := a.enterName(score, level); ok {
			e := highscore.Entry{Name: highscore.CleanName(name), Score: score, Level: level, Date: time.Now()}
			if err := a.store.Add(e); err != nil {
				log.Printf("Failed to save highscore: %v", err)
			}
		}
	}
	a.showHighscores()
}

// enterName collects a player name; ok is false when the player skips
func (a *app) enterName(score, level int) (string, bool) {
	var name []rune
	for {
		a.render.RenderScreen(renderer.View{Page: renderer.PageNameEntry, Name: string(name), Score: score, Level: level})
		p, ok := <-a.presses
		if !ok {
			return "", false
		}
		switch {
		case p.Key == input.KeyEnter:
			return string(name), true
		case p.Key == input.KeyEscape || p.Key == input.KeyInterrupt:
			return "", false
		case p.Key == input.KeyBackspace:
			if len(name) > 0 {
				name = name[:len(name)-1]
			}
		case p.IsPrintable():
			if len(name) < config.HighscoreNameMaxChars {
				name = append(name, p.Text())
			}
		}
	}
}
