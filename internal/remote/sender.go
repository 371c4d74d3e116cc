package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
)

// Sender delivers commands from a controller to a running game.
type Sender interface {
	Send(c Command) error
	Close() error
}

// FileSender writes each command over the command file.
type FileSender struct {
	path string
}

// NewFileSender creates a sender for path and writes an idle command to it.
func NewFileSender(path string) (*FileSender, error) {
	s := &FileSender{path: path}
	if err := s.Send(Idle()); err != nil {
		return nil, err
	}
	return s, nil
}

// Send replaces the file contents with c. The write goes through a
// temporary file so pollers never see a partial command.
func (s *FileSender) Send(c Command) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".flappy-cmd-*")
	if err != nil {
		return fmt.Errorf("remote: cannot write command: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("remote: cannot write command: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("remote: cannot write command: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("remote: cannot replace command file: %w", err)
	}
	return nil
}

// Close is a no-op; the file stays for the next controller.
func (s *FileSender) Close() error {
	return nil
}

// WSSender sends commands over a websocket connection.
type WSSender struct {
	conn *websocket.Conn
}

// DialWS connects to a game's websocket endpoint, e.g. ws://localhost:8090/ws.
func DialWS(ctx context.Context, url string) (*WSSender, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: cannot connect to %s: %w", url, err)
	}
	return &WSSender{conn: conn}, nil
}

// Send writes c as one JSON text message.
func (s *WSSender) Send(c Command) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := s.conn.WriteJSON(c); err != nil {
		return fmt.Errorf("remote: cannot send command: %w", err)
	}
	return nil
}

// Close says goodbye and closes the connection.
func (s *WSSender) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}

var (
	_ Sender = (*FileSender)(nil)
	_ Sender = (*WSSender)(nil)
)
