package ptyhost

import (
	"io"
	"net"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"pkt.systems/pslog"
	"pkt.systems/termtab/schema"
)

// replayLimit bounds the output kept for late attachments.
const replayLimit = 256 * 1024

// PtySession is a live terminal session backed either by a local PTY or by a
// stream to a detached backend session.
type PtySession struct {
	id       schema.SessionID
	identity schema.Identity
	log      pslog.Logger

	mu           sync.Mutex
	title        string
	ptmx         *os.File
	cmd          *exec.Cmd
	conn         net.Conn
	writers      map[int]io.Writer
	nextWriter   int
	focus        map[int]func()
	dispose      map[int]func()
	nextCallback int
	replay       []byte
	disposed     bool
}

func newSession(id schema.SessionID, identity schema.Identity, title string, log pslog.Logger) *PtySession {
	return &PtySession{
		id:       id,
		identity: identity,
		title:    title,
		log:      log,
		writers:  make(map[int]io.Writer),
		focus:    make(map[int]func()),
		dispose:  make(map[int]func()),
	}
}

// ID returns the session's numeric id.
func (s *PtySession) ID() schema.SessionID { return s.id }

// Identity returns the session's virtual-document identity.
func (s *PtySession) Identity() schema.Identity { return s.identity }

// Title returns the session title.
func (s *PtySession) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle updates the session title.
func (s *PtySession) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// Write sends input to the terminal.
func (s *PtySession) Write(p []byte) (int, error) {
	s.mu.Lock()
	ptmx, conn, disposed := s.ptmx, s.conn, s.disposed
	s.mu.Unlock()
	if disposed {
		return 0, schema.ErrSessionDetached
	}
	if ptmx != nil {
		return ptmx.Write(p)
	}
	if conn != nil {
		return conn.Write(p)
	}
	return 0, schema.ErrSessionDetached
}

// Resize changes the PTY window size. Sessions attached to a remote backend
// stream have no size channel and ignore resizes.
func (s *PtySession) Resize(cols, rows int) error {
	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()
	if ptmx == nil {
		return nil
	}
	return pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Attach registers an output writer. Buffered output is replayed to the
// writer first. The returned func detaches the writer.
func (s *PtySession) Attach(w io.Writer) (func(), error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, schema.ErrSessionDetached
	}
	replay := append([]byte(nil), s.replay...)
	id := s.nextWriter
	s.nextWriter++
	s.writers[id] = w
	s.mu.Unlock()

	if len(replay) > 0 {
		_, _ = w.Write(replay)
	}
	return func() {
		s.mu.Lock()
		delete(s.writers, id)
		s.mu.Unlock()
	}, nil
}

// OnFocus registers a focus callback and returns its remover.
func (s *PtySession) OnFocus(fn func()) func() {
	s.mu.Lock()
	id := s.nextCallback
	s.nextCallback++
	s.focus[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.focus, id)
		s.mu.Unlock()
	}
}

// OnDispose registers a dispose callback and returns its remover.
func (s *PtySession) OnDispose(fn func()) func() {
	s.mu.Lock()
	id := s.nextCallback
	s.nextCallback++
	s.dispose[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.dispose, id)
		s.mu.Unlock()
	}
}

// Focus runs the registered focus callbacks.
func (s *PtySession) Focus() {
	s.mu.Lock()
	callbacks := make([]func(), 0, len(s.focus))
	for _, fn := range s.focus {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Dispose terminates the session. It kills the child process (or closes the
// backend stream), then runs dispose callbacks exactly once.
func (s *PtySession) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	ptmx, conn, cmd := s.ptmx, s.conn, s.cmd
	callbacks := make([]func(), 0, len(s.dispose))
	for _, fn := range s.dispose {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	if ptmx != nil {
		_ = ptmx.Close()
	}
	if conn != nil {
		_ = conn.Close()
	}
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if s.log != nil {
		s.log.Debug("session disposed", "session", s.id)
	}
	for _, fn := range callbacks {
		fn()
	}
}

// Disposed reports whether the session has been terminated.
func (s *PtySession) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *PtySession) broadcast(p []byte) {
	s.mu.Lock()
	s.replay = append(s.replay, p...)
	if len(s.replay) > replayLimit {
		s.replay = s.replay[len(s.replay)-replayLimit:]
	}
	writers := make([]io.Writer, 0, len(s.writers))
	for _, w := range s.writers {
		writers = append(writers, w)
	}
	s.mu.Unlock()
	for _, w := range writers {
		_, _ = w.Write(p)
	}
}

// readLoop pumps terminal output to attached writers until the source closes,
// then disposes the session.
func (s *PtySession) readLoop(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.broadcast(buf[:n])
		}
		if err != nil {
			break
		}
	}
	if cmd := s.command(); cmd != nil {
		_ = cmd.Wait()
	}
	s.Dispose()
}

func (s *PtySession) command() *exec.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd
}
