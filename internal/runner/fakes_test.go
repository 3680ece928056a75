package runner

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

type fakeUI struct {
	mu        sync.Mutex
	events    []string
	updates   [][]string
	messages  []string
	opened    []string
	dismissed int
	openErr   error
}

func (u *fakeUI) record(ev string) {
	u.events = append(u.events, ev)
}

func (u *fakeUI) ShowMessage(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = append(u.messages, text)
	u.record("message:" + text)
}

func (u *fakeUI) ShowModalWait(title, initial string) WaitHandle {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.record("wait:" + title)
	return &fakeWait{ui: u}
}

func (u *fakeUI) OpenWithDefaultHandler(path string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.opened = append(u.opened, path)
	u.record("open")
	return u.openErr
}

type fakeWait struct{ ui *fakeUI }

func (w *fakeWait) Update(lines []string) {
	w.ui.mu.Lock()
	defer w.ui.mu.Unlock()
	w.ui.updates = append(w.ui.updates, lines)
	w.ui.record("update")
}

func (w *fakeWait) Dismiss() {
	w.ui.mu.Lock()
	defer w.ui.mu.Unlock()
	w.ui.dismissed++
	w.ui.record("dismiss")
}

// trackingReader records Close so tests can assert the stream is released.
type trackingReader struct {
	io.Reader
	closed bool
}

func (t *trackingReader) Close() error {
	t.closed = true
	return nil
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, f.err
	}
	f.done = true
	return copy(p, f.data), nil
}

type fakeProcess struct {
	out      io.ReadCloser
	exitCode int
	waitErr  error
}

func (p *fakeProcess) Output() io.ReadCloser { return p.out }
func (p *fakeProcess) Wait() (int, error)    { return p.exitCode, p.waitErr }

type fakeLauncher struct {
	mu        sync.Mutex
	argv      [][]string
	dirs      []string
	proc      *fakeProcess
	launchErr error
}

func (l *fakeLauncher) Launch(_ context.Context, argv []string, dir string) (Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.argv = append(l.argv, argv)
	l.dirs = append(l.dirs, dir)
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return l.proc, nil
}

func (l *fakeLauncher) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.argv)
}

func outputOf(s string) *trackingReader {
	return &trackingReader{Reader: strings.NewReader(s)}
}

var errBoom = errors.New("boom")
