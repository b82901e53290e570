package sshserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	gliderssh "github.com/gliderlabs/ssh"
	"golang.org/x/crypto/ssh"

	"pkt.systems/pslog"
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/internal/eventbus"
	"pkt.systems/termtab/internal/logx"
	"pkt.systems/termtab/schema"
)

// SessionCreator spawns a fresh session and opens its tab.
type SessionCreator interface {
	NewSession(ctx context.Context, launch schema.LaunchConfig) (schema.SessionSnapshot, error)
}

// Server exposes the registry over SSH: `list` prints the session table,
// `attach <id|identity>` bridges the client terminal to a session, `new`
// spawns a session, `detach <id>` removes one.
type Server struct {
	Addr               string
	HostKeyPath        string
	AuthorizedKeysPath string
	Listener           net.Listener
	Service            core.Service
	Registry           *core.Registry
	Creator            SessionCreator
	Events             *eventbus.Bus
	logger             pslog.Logger
}

type authContextKey string

const pubKeyOK authContextKey = "pubkey-ok"

// ListenAndServe starts the SSH server and shuts down on context cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.logger == nil {
		s.logger = pslog.Ctx(ctx)
	}
	if s.Registry == nil {
		return errors.New("registry is required for SSH")
	}

	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}
	authorized, err := LoadAuthorizedKeys(s.AuthorizedKeysPath)
	if err != nil {
		return fmt.Errorf("load authorized keys: %w", err)
	}
	s.logger.Info("ssh authorized keys loaded", "count", authorized.Len())

	server := &gliderssh.Server{
		Addr:    s.Addr,
		Handler: s.handleSession,
		PublicKeyHandler: func(ctx gliderssh.Context, key gliderssh.PublicKey) bool {
			return s.handlePublicKey(ctx, authorized, key)
		},
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			errCh <- server.Serve(s.Listener)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handlePublicKey(ctx gliderssh.Context, authorized *AuthorizedKeys, key gliderssh.PublicKey) bool {
	fingerprint := ssh.FingerprintSHA256(key)
	log := s.logger.With("remote", remoteAddr(ctx), "fingerprint", fingerprint)
	if !authorized.Contains(key) {
		log.Warn("ssh pubkey rejected", "reason", "no matching key")
		return false
	}
	ctx.SetValue(pubKeyOK, true)
	log.Info("ssh pubkey accepted")
	return true
}

func remoteAddr(ctx gliderssh.Context) string {
	if ctx == nil || ctx.RemoteAddr() == nil {
		return ""
	}
	return ctx.RemoteAddr().String()
}

func (s *Server) handleSession(sess gliderssh.Session) {
	if sess.Context().Value(pubKeyOK) != true {
		_ = sess.Exit(1)
		return
	}
	log := s.logger.With("remote", sess.RemoteAddr().String())
	if sshSession := sess.Context().SessionID(); sshSession != "" {
		log = log.With("ssh_session", sshSession)
	}
	ctx := logx.ContextWithWindowLogger(sess.Context(), log, s.Registry.Window())

	args := sess.Command()
	command := "list"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}
	log.Info("ssh command", "command", command, "args", len(args))

	var err error
	switch command {
	case "list":
		err = s.runList(ctx, sess)
	case "attach":
		err = s.runAttach(ctx, sess, args)
	case "new":
		err = s.runNew(ctx, sess, args)
	case "detach":
		err = s.runDetach(ctx, sess, args)
	case "events":
		err = s.runEvents(ctx, sess)
	default:
		err = fmt.Errorf("unknown command %q (try: list, attach, new, detach, events)", command)
	}
	if err != nil {
		_, _ = fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
		_ = sess.Exit(1)
		return
	}
	_ = sess.Exit(0)
}

func (s *Server) runList(ctx context.Context, sess gliderssh.Session) error {
	resp, err := s.Service.ListSessions(ctx, schema.ListSessionsRequest{})
	if err != nil {
		return err
	}
	if len(resp.Sessions) == 0 {
		_, _ = io.WriteString(sess, "no sessions\n")
		return nil
	}
	for _, session := range resp.Sessions {
		marker := " "
		if session.Active {
			marker = "*"
		}
		_, _ = fmt.Fprintf(sess, "%s %-4d %-32s %s\n", marker, session.ID, session.Identity, session.Title)
	}
	return nil
}

func (s *Server) runNew(ctx context.Context, sess gliderssh.Session, args []string) error {
	if s.Creator == nil {
		return errors.New("session creation not available")
	}
	launch := schema.LaunchConfig{}
	if len(args) > 0 {
		launch.Shell = args[0]
		launch.Args = args[1:]
	}
	snapshot, err := s.Creator.NewSession(ctx, launch)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(sess, "%d %s\n", snapshot.ID, snapshot.Identity)
	return nil
}

func (s *Server) runDetach(ctx context.Context, sess gliderssh.Session, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: detach <session-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	resp, err := s.Service.DetachSession(ctx, schema.DetachRequest{SessionID: schema.SessionID(id)})
	if err != nil {
		return err
	}
	if !resp.Detached {
		_, _ = io.WriteString(sess, "not managed\n")
		return nil
	}
	_, _ = fmt.Fprintf(sess, "detached %d\n", resp.Session.ID)
	return nil
}

func (s *Server) runEvents(ctx context.Context, sess gliderssh.Session) error {
	if s.Events == nil {
		return errors.New("event stream not available")
	}
	events, cancel := s.Events.Subscribe(s.Registry.Window())
	defer cancel()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := io.WriteString(sess, formatEvent(event)); err != nil {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func formatEvent(event eventbus.Event) string {
	switch event.Type {
	case schema.EventSessionDisposed, schema.EventSessionFocused:
		return fmt.Sprintf("%s %d %s\n", event.Type, event.Session.Session.ID, event.Session.Session.Identity)
	case schema.EventActiveChanged:
		if event.Active.Session == nil {
			return fmt.Sprintf("%s none\n", event.Type)
		}
		return fmt.Sprintf("%s %d %s\n", event.Type, event.Active.Session.ID, event.Active.Session.Identity)
	case schema.EventListChanged:
		return fmt.Sprintf("%s %d sessions\n", event.Type, len(event.List.Sessions))
	default:
		return fmt.Sprintf("%s\n", event.Type)
	}
}

func (s *Server) runAttach(ctx context.Context, sess gliderssh.Session, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: attach <session-id|identity>")
	}
	session, err := s.lookupSession(args[0])
	if err != nil {
		return err
	}

	pty, winCh, ok := sess.Pty()
	if !ok {
		return errors.New("pty required for attach")
	}
	_ = session.Resize(pty.Window.Width, pty.Window.Height)

	cancelAttach, err := session.Attach(sess)
	if err != nil {
		return err
	}
	defer cancelAttach()

	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }
	removeDispose := session.OnDispose(finish)
	defer removeDispose()

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := sess.Read(buf)
			if n > 0 {
				if _, werr := session.Write(buf[:n]); werr != nil {
					break
				}
			}
			if err != nil {
				break
			}
		}
		finish()
	}()

	log := pslog.Ctx(ctx)
	log.Info("ssh attach opened", "session", session.ID())
	for {
		select {
		case window, ok := <-winCh:
			if !ok {
				finish()
				continue
			}
			_ = session.Resize(window.Width, window.Height)
		case <-done:
			log.Info("ssh attach closed", "session", session.ID())
			return nil
		case <-ctx.Done():
			log.Info("ssh attach closed", "session", session.ID())
			return nil
		}
	}
}

func (s *Server) lookupSession(target string) (core.Session, error) {
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		session, ok := s.Registry.SessionByID(schema.SessionID(id))
		if !ok {
			return nil, schema.ErrSessionNotFound
		}
		return session, nil
	}
	identity := schema.Identity(strings.TrimSpace(target))
	if err := schema.ValidateIdentity(identity); err != nil {
		return nil, err
	}
	session, ok := s.Registry.SessionByIdentity(identity)
	if !ok {
		return nil, schema.ErrSessionNotFound
	}
	return session, nil
}
