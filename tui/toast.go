package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastTTL = 4 * time.Second

type toast struct {
	id   int
	text string
}

// toastQueue is shared by pointer so the sticker Notifier can push from
// inside a leaf Update while the Model is passed by value.
type toastQueue struct {
	seq    int
	active []toast
	fresh  []int
}

func (q *toastQueue) push(text string) {
	q.seq++
	q.active = append(q.active, toast{id: q.seq, text: text})
	q.fresh = append(q.fresh, q.seq)
}

// expiryCmds schedules removal of toasts pushed since the last call.
func (q *toastQueue) expiryCmds() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(q.fresh))
	for _, id := range q.fresh {
		id := id
		cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	q.fresh = q.fresh[:0]
	return cmds
}

func (q *toastQueue) remove(id int) {
	for i, t := range q.active {
		if t.id == id {
			q.active = append(q.active[:i], q.active[i+1:]...)
			return
		}
	}
}

// dismiss drops the newest toast.
func (q *toastQueue) dismiss() bool {
	if len(q.active) == 0 {
		return false
	}
	q.active = q.active[:len(q.active)-1]
	return true
}

func (q *toastQueue) latest() (toast, bool) {
	if len(q.active) == 0 {
		return toast{}, false
	}
	return q.active[len(q.active)-1], true
}

func (q *toastQueue) len() int {
	return len(q.active)
}
