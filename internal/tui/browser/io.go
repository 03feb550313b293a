package browser

import (
	"context"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/ccpanel/pkg/discovery"
	"github.com/mattsolo1/ccpanel/pkg/models"
	"github.com/mattsolo1/ccpanel/pkg/service"
	"github.com/mattsolo1/ccpanel/pkg/watch"
)

type snapshotMsg struct {
	snapshot discovery.Snapshot
}

type watcherStartedMsg struct {
	watcher *watch.Watcher
}

type fileChangedMsg struct{}

type mutationDoneMsg struct {
	status string
	err    error
}

// discoverCmd runs one full discovery pass off the UI goroutine.
func discoverCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: svc.DiscoverAll(context.Background())}
	}
}

// startWatcherCmd starts the filesystem watcher. Change notifications
// land as fileChangedMsg via the program's message queue.
func startWatcherCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		changes := make(chan struct{}, 1)
		w, err := svc.Watch(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		go func() {
			for range changes {
				if program != nil {
					program.Send(fileChangedMsg{})
				}
			}
		}()
		return watcherStartedMsg{watcher: w}
	}
}

// program is set by Run so the watcher goroutine can push messages.
var program *tea.Program

// Run starts the side panel.
func Run(svc *service.Service) error {
	m := New(svc)
	program = tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func deleteCmd(svc *service.Service, item models.ConfigItem) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Mutation.Delete(item, true); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "deleted " + item.Name}
	}
}

func renameCmd(svc *service.Service, item models.ConfigItem, newName string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Mutation.Rename(item, newName); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "renamed to " + newName}
	}
}

func moveScopeCmd(svc *service.Service, item models.ConfigItem) tea.Cmd {
	target := models.ScopeProject
	if item.Scope == models.ScopeProject {
		target = models.ScopeGlobal
	}
	return func() tea.Msg {
		if _, err := svc.Mutation.MoveScope(item, target); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "moved " + item.Name + " to " + string(target)}
	}
}

func createCmd(svc *service.Service, kind models.Kind, name string) tea.Cmd {
	return func() tea.Msg {
		fileName := service.FileName(kind, name)
		content := service.DefaultContent(kind, name)
		if _, err := svc.Mutation.CreateFile(kind, models.ScopeProject, fileName, content, ""); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "created " + fileName}
	}
}

func openEditorCmd(svc *service.Service, path string) tea.Cmd {
	editor := svc.Editor()
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return fileChangedMsg{}
	})
}
