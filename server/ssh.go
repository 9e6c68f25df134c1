package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/milk9111/isometric/ecs/entity"
	"github.com/milk9111/isometric/scene"
	"github.com/milk9111/isometric/termview"
)

// Server gives every SSH session its own copy of a scene, drawn with
// half-block characters.
type Server struct {
	Addr        string
	HostKeyPath string
	Scene       string
	Map         string
	FPS         int
}

func (s *Server) ListenAndServe() error {
	if err := EnsureHostKey(s.HostKeyPath); err != nil {
		return fmt.Errorf("server: host key: %w", err)
	}
	srv := &ssh.Server{
		Addr: s.Addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}
	if err := srv.SetOption(ssh.HostKeyFile(s.HostKeyPath)); err != nil {
		return fmt.Errorf("server: set host key: %w", err)
	}
	log.Printf("ssh listening on %s", s.Addr)
	return srv.ListenAndServe()
}

func (s *Server) frameInterval() time.Duration {
	fps := s.FPS
	if fps <= 0 {
		fps = 20
	}
	return time.Second / time.Duration(fps)
}

func (s *Server) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	keys := termview.NewKeys()
	rt, err := scene.Load(s.Scene, keys, entity.Options{Map: s.Map})
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\n", err)
		log.Printf("server: load %s for %s: %v", s.Scene, sess.User(), err)
		return
	}
	log.Printf("session opened: %s", sess.User())
	defer log.Printf("session closed: %s", sess.User())

	termW, termH := ptyReq.Window.Width, ptyReq.Window.Height
	var termMu sync.Mutex

	io.WriteString(sess, termview.EnableAltScreen())
	io.WriteString(sess, termview.HideCursor())
	io.WriteString(sess, termview.ClearScreen())
	defer func() {
		io.WriteString(sess, termview.ShowCursor())
		io.WriteString(sess, termview.DisableAltScreen())
	}()

	quitCh := make(chan struct{})
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			dirs, quit := parseInput(buf[:n])
			if quit {
				return
			}
			for _, d := range dirs {
				keys.Press(d)
			}
		}
	}()

	go func() {
		for win := range winCh {
			termMu.Lock()
			termW, termH = win.Width, win.Height
			termMu.Unlock()
		}
	}()

	var raster termview.Rasterizer
	var sb strings.Builder
	fb := termview.Resize(nil, 1, 2)
	ticker := time.NewTicker(s.frameInterval())
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case now := <-ticker.C:
			rt.Step(now.Sub(last).Seconds())
			last = now

			termMu.Lock()
			w, h := termview.FrameSize(termW, termH, 1)
			termMu.Unlock()
			fb = termview.Resize(fb, w, h)
			raster.Draw(rt.World, rt.Spec, fb)

			sb.Reset()
			termview.EncodeHalfBlocks(&sb, fb)
			sb.WriteString("\r\n")
			sb.WriteString(rt.String())
			sb.WriteString("  [wasd/arrows move, q quits]")
			sb.WriteString(termview.CSI + "K")
			if _, err := io.WriteString(sess, sb.String()); err != nil {
				return
			}
		}
	}
}

// parseInput turns raw terminal bytes into directions. WASD, arrow key
// escape sequences, q and Ctrl-C are recognised.
func parseInput(data []byte) (dirs []termview.Direction, quit bool) {
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				dirs = append(dirs, termview.Up)
			case 'B':
				dirs = append(dirs, termview.Down)
			case 'C':
				dirs = append(dirs, termview.Right)
			case 'D':
				dirs = append(dirs, termview.Left)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			dirs = append(dirs, termview.Up)
		case 's', 'S':
			dirs = append(dirs, termview.Down)
		case 'a', 'A':
			dirs = append(dirs, termview.Left)
		case 'd', 'D':
			dirs = append(dirs, termview.Right)
		case 'q', 'Q', 3:
			return dirs, true
		}
		i += size
	}
	return dirs, false
}

// EnsureHostKey writes a new ed25519 host key to path unless one exists.
func EnsureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Println("generating host key", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
