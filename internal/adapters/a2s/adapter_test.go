package a2s

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/melih/valman/internal/core/domain"
	a2s "github.com/rumblefrog/go-a2s"
)

type fakeQuerier struct {
	info   *a2s.ServerInfo
	err    error
	closed bool
}

func (f *fakeQuerier) QueryInfo() (*a2s.ServerInfo, error) { return f.info, f.err }
func (f *fakeQuerier) Close() error                       { f.closed = true; return nil }

func newTestAdapter(q *fakeQuerier, dialErr error) *Adapter {
	a := NewAdapter(time.Second, nil)
	a.dial = func(address string, timeout time.Duration) (infoQuerier, error) {
		if dialErr != nil {
			return nil, dialErr
		}
		return q, nil
	}
	return a
}

func TestGetInfo(t *testing.T) {
	q := &fakeQuerier{info: &a2s.ServerInfo{
		Name:               "Vikings Only",
		Players:            3,
		MaxPlayers:         10,
		ExtendedServerInfo: &a2s.ExtendedServerInfo{Keywords: "0.217.46"},
	}}
	snap, err := newTestAdapter(q, nil).GetInfo(context.Background(), "127.0.0.1:2457")
	if err != nil {
		t.Fatalf("GetInfo error: %v", err)
	}
	if snap.Name != "Vikings Only" || snap.Version != "0.217.46" || snap.Players != 3 || snap.MaxPlayers != 10 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Roster == nil || len(snap.Roster) != 0 {
		t.Fatalf("expected empty roster, got %v", snap.Roster)
	}
	if !q.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestGetInfoWithoutKeywords(t *testing.T) {
	q := &fakeQuerier{info: &a2s.ServerInfo{Name: "srv"}}
	snap, err := newTestAdapter(q, nil).GetInfo(context.Background(), "127.0.0.1:2457")
	if err != nil {
		t.Fatalf("GetInfo error: %v", err)
	}
	if snap.Version != "" {
		t.Fatalf("expected empty version, got %q", snap.Version)
	}
}

func TestGetInfoFailures(t *testing.T) {
	t.Run("dial", func(t *testing.T) {
		_, err := newTestAdapter(nil, errors.New("no route")).GetInfo(context.Background(), "x:1")
		if !errors.Is(err, domain.ErrGameQuery) {
			t.Fatalf("expected game query error, got %v", err)
		}
	})
	t.Run("query", func(t *testing.T) {
		q := &fakeQuerier{err: errors.New("i/o timeout")}
		_, err := newTestAdapter(q, nil).GetInfo(context.Background(), "x:1")
		if !errors.Is(err, domain.ErrGameQuery) {
			t.Fatalf("expected game query error, got %v", err)
		}
		if !q.closed {
			t.Fatalf("expected client to be closed after failure")
		}
	})
}

// serveUDP answers every datagram on a local socket with reply.
func serveUDP(t *testing.T, reply []byte) string {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 1500)
		for {
			_, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			if _, err := conn.WriteTo(reply, addr); err != nil {
				return
			}
		}
	}()
	return conn.LocalAddr().String()
}

func TestGetInfoTruncatedReply(t *testing.T) {
	address := serveUDP(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x49})

	_, err := NewAdapter(time.Second, nil).GetInfo(context.Background(), address)
	if !errors.Is(err, domain.ErrGameQuery) {
		t.Fatalf("expected game query error, got %v", err)
	}
}

type panickingQuerier struct{ closed bool }

func (p *panickingQuerier) QueryInfo() (*a2s.ServerInfo, error) { panic("index out of range [5] with length 5") }
func (p *panickingQuerier) Close() error                       { p.closed = true; return nil }

func TestGetInfoRecoversParserPanic(t *testing.T) {
	q := &panickingQuerier{}
	a := NewAdapter(time.Second, nil)
	a.dial = func(address string, timeout time.Duration) (infoQuerier, error) { return q, nil }

	snap, err := a.GetInfo(context.Background(), "127.0.0.1:2457")
	if !errors.Is(err, domain.ErrGameQuery) {
		t.Fatalf("expected game query error, got %v", err)
	}
	if snap.Name != "" {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if !q.closed {
		t.Fatalf("expected client to be closed after panic")
	}
}
