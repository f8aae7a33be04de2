// Package tui implements the terminal presentation of the pet.
package tui

import (
	"context"
	"fmt"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
	"github.com/deskpet-io/deskpet/internal/watcher"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the pet UI against a connected host. It returns when the
// user closes the UI or the pet quits the host.
func Run(client *hostapi.Client, live *config.LiveSettings) error {
	if err := config.EnsureGlobalLogsDir(); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	logPath, err := config.TUILogFile()
	if err != nil {
		return err
	}
	logFile, err := tea.LogToFile(logPath, "deskpet")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := pet.New(client, pet.OptionsFromSettings(live.Current()))
	ref := &programRef{}

	live.Subscribe(func(s models.PetSettings) {
		ctrl.ApplySettings(s)
		ref.Send(SettingsChangedMsg{Settings: s})
	})

	w, err := watcher.New("")
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		log.Printf("[tui] settings live reload disabled: %v", err)
	}
	defer w.Stop()
	go followChanges(ctx, w, live, ref)

	p := tea.NewProgram(
		NewModel(ctrl, client, live, ref),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	ref.Set(p)

	ctrl.Start(ctx)
	go forwardEvents(ctrl, ref)

	_, err = p.Run()
	ref.Clear()
	ctrl.Stop()
	return err
}

// forwardEvents feeds controller events into the program until the
// controller stops.
func forwardEvents(ctrl *pet.Controller, ref *programRef) {
	for ev := range ctrl.Events() {
		ref.Send(PetEventMsg{Event: ev})
	}
}

// followChanges reloads settings when the storage file changes and closes
// the UI when the host removes its daemon file.
func followChanges(ctx context.Context, w *watcher.Watcher, live *config.LiveSettings, ref *programRef) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.Events():
			switch ev.Type {
			case watcher.EventSettingsChanged:
				changed, err := live.Reload(ctx)
				if err != nil {
					log.Printf("[tui] failed to reload settings: %v", err)
					continue
				}
				if changed {
					log.Printf("[tui] settings reloaded")
				}
			case watcher.EventDaemonRemoved:
				ref.Send(DaemonDisconnectedMsg{})
			}
		}
	}
}
