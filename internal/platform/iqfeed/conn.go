package iqfeed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	"history_loader/internal/feature/history/domain"
)

// EndMessage marks the end of a lookup response.
const EndMessage = "!ENDMSG!"

// lineTerminator ends every command sent to the feed.
const lineTerminator = "\r\n"


// Conn is one open lookup socket.
type Conn struct {
	conn       net.Conn
	bufferSize int
}

// Dial opens a TCP connection to the configured host and port.
// On failure it returns a nil *Conn and an error wrapping domain.ErrConnect.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	d := &net.Dialer{Timeout: cfg.DialTimeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("iqfeed: %w: %s: %w", domain.ErrConnect, addr, err)
	}
	slog.Info("connected to iqfeed", "address", addr)

	size := cfg.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Conn{conn: c, bufferSize: size}, nil
}

// Send writes cmd followed by CRLF. Failures are not retried.
func (c *Conn) Send(cmd string) error {
	slog.Info("sending request", "request", cmd)
	if _, err := c.conn.Write([]byte(cmd + lineTerminator)); err != nil {
		return fmt.Errorf("iqfeed: %w: %w", domain.ErrSend, err)
	}
	return nil
}

// Receive reads chunks until one contains EndMessage or the peer closes the stream.
// A read error ends the loop early; the data read so far is returned together
// with an error wrapping domain.ErrReceive.
func (c *Conn) Receive() (string, error) {
	var data bytes.Buffer
	chunk := make([]byte, c.bufferSize)
	sentinel := []byte(EndMessage)

	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			// Include the tail of the previous chunk so a sentinel split across reads is still found.
			from := data.Len() - (len(sentinel) - 1)
			if from < 0 {
				from = 0
			}
			data.Write(chunk[:n])
			if bytes.Contains(data.Bytes()[from:], sentinel) {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return data.String(), fmt.Errorf("iqfeed: %w: %w", domain.ErrReceive, err)
		}
		if n == 0 {
			break
		}
	}

	slog.Debug("raw response", "data", data.String())
	return data.String(), nil
}

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return c.conn.Close()
}
