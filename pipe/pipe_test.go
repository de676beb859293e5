//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

// Package pipe tests endpoint I/O semantics.
// Author: momentics <momentics@gmail.com>

package pipe_test

import (
	"bytes"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/momentics/hioload-pipe/api"
	"github.com/momentics/hioload-pipe/pipe"
)

// mustPipe creates a pipe and registers cleanup for both ends.
func mustPipe(t *testing.T) (*pipe.Sender, *pipe.Receiver) {
	t.Helper()
	s, r, err := pipe.New()
	if err != nil {
		t.Fatalf("pipe.New: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
		_ = r.Close()
	})
	return s, r
}

// TestWriteRead transfers one message end to end.
func TestWriteRead(t *testing.T) {
	s, r := mustPipe(t)

	msg := []byte("Hello world")
	n, err := s.Write(msg)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(msg) {
		t.Fatalf("Write wrote %d bytes, want %d", n, len(msg))
	}

	buf := make([]byte, len(msg))
	n, err = r.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(msg) {
		t.Fatalf("Read returned %d bytes, want %d", n, len(msg))
	}
	if !bytes.Equal(buf, msg) {
		t.Errorf("Read returned %q, want %q", buf, msg)
	}
}

// TestByteStreamPreserved checks content and order survive arbitrary
// read splits for payloads below the pipe capacity.
func TestByteStreamPreserved(t *testing.T) {
	s, r := mustPipe(t)

	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	n, err := s.Write(payload)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("Write wrote %d bytes, want %d", n, len(payload))
	}

	var got []byte
	chunk := make([]byte, 137)
	for len(got) < len(payload) {
		n, err := r.Read(chunk)
		if err != nil {
			t.Fatalf("Read after %d bytes: %v", len(got), err)
		}
		got = append(got, chunk[:n]...)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("stream corrupted: got %d bytes, first mismatch at %d",
			len(got), firstMismatch(got, payload))
	}
}

func firstMismatch(a, b []byte) int {
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			return i
		}
	}
	return -1
}

// TestShortRead verifies a partial read is a success value and the
// remainder stays buffered.
func TestShortRead(t *testing.T) {
	s, r := mustPipe(t)

	if _, err := s.Write([]byte("Hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 4)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 || string(buf[:n]) != "Hell" {
		t.Fatalf("first read = %d %q, want 4 %q", n, buf[:n], "Hell")
	}

	rest := make([]byte, 16)
	n, err = r.Read(rest)
	if err != nil {
		t.Fatalf("second Read: %v", err)
	}
	if string(rest[:n]) != "o world" {
		t.Errorf("second read = %q, want %q", rest[:n], "o world")
	}
}

// TestReadEmptyWouldBlock checks a read on an empty pipe returns the
// would-block indication immediately instead of suspending.
func TestReadEmptyWouldBlock(t *testing.T) {
	_, r := mustPipe(t)

	start := time.Now()
	n, err := r.Read(make([]byte, 16))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Read blocked for %v", elapsed)
	}
	if n != 0 {
		t.Fatalf("Read returned %d bytes from empty pipe", n)
	}
	if !api.IsWouldBlock(err) {
		t.Fatalf("Read error = %v, want would-block", err)
	}
}

// TestWriteFullWouldBlock fills the pipe and checks the next write
// reports would-block instead of suspending.
func TestWriteFullWouldBlock(t *testing.T) {
	s, _ := mustPipe(t)

	chunk := make([]byte, 32*1024)
	var total int
	for i := 0; ; i++ {
		if i > 1<<14 {
			t.Fatalf("pipe did not fill after %d bytes", total)
		}
		n, err := s.Write(chunk)
		total += n
		if err != nil {
			if !api.IsWouldBlock(err) {
				t.Fatalf("Write error = %v, want would-block", err)
			}
			break
		}
	}
	if total == 0 {
		t.Error("pipe reported full before accepting any bytes")
	}
}

// TestEndOfStreamAfterSenderClose drains the pipe after the sender is
// closed and expects a clean zero-byte end-of-stream, not an error.
func TestEndOfStreamAfterSenderClose(t *testing.T) {
	s, r := mustPipe(t)

	if _, err := s.Write([]byte("tail")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("drain read = %d, %v; want 4, nil", n, err)
	}

	n, err = r.Read(buf)
	if n != 0 || err != nil {
		t.Fatalf("read after drain = %d, %v; want 0, nil", n, err)
	}
}

// TestImmediateSenderClose closes the sender before any write; the
// first read must already report end-of-stream.
func TestImmediateSenderClose(t *testing.T) {
	s, r := mustPipe(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	n, err := r.Read(make([]byte, 16))
	if n != 0 || err != nil {
		t.Fatalf("Read = %d, %v; want 0, nil", n, err)
	}
}

// TestWriteAfterReceiverClose checks the sender observes a gone peer
// as an error, not a hang.
func TestWriteAfterReceiverClose(t *testing.T) {
	s, r := mustPipe(t)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	start := time.Now()
	_, err := s.Write([]byte("orphan"))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Write blocked for %v", elapsed)
	}
	if err == nil {
		t.Fatal("Write to closed receiver succeeded, want error")
	}
	if !errors.Is(err, syscall.EPIPE) {
		t.Errorf("Write error = %v, want EPIPE", err)
	}
}

// TestVectoredWriteRead transfers a message split across buffers in
// both directions.
func TestVectoredWriteRead(t *testing.T) {
	s, r := mustPipe(t)

	n, err := s.WriteVectored([][]byte{[]byte("Hello "), []byte("world")})
	if err != nil {
		t.Fatalf("WriteVectored: %v", err)
	}
	if n != 11 {
		t.Fatalf("WriteVectored wrote %d bytes, want 11", n)
	}

	head := make([]byte, 6)
	tail := make([]byte, 5)
	n, err = r.ReadVectored([][]byte{head, tail})
	if err != nil {
		t.Fatalf("ReadVectored: %v", err)
	}
	if n != 11 {
		t.Fatalf("ReadVectored returned %d bytes, want 11", n)
	}
	if string(head) != "Hello " || string(tail) != "world" {
		t.Errorf("ReadVectored buffers = %q, %q", head, tail)
	}
}

// TestFlushNoop checks Flush succeeds and carries no side effect.
func TestFlushNoop(t *testing.T) {
	s, r := mustPipe(t)

	if _, err := s.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	buf := make([]byte, 1)
	if n, err := r.Read(buf); n != 1 || err != nil {
		t.Fatalf("Read after Flush = %d, %v", n, err)
	}
}

// TestRawRoundTrip releases both descriptors and rebuilds endpoints
// from the raw values; the rebuilt pair must remain fully functional.
func TestRawRoundTrip(t *testing.T) {
	s, r, err := pipe.New()
	if err != nil {
		t.Fatalf("pipe.New: %v", err)
	}

	sraw := s.ReleaseRaw()
	rraw := r.ReleaseRaw()
	// Closing the released originals must not touch the descriptors.
	if err := s.Close(); err != nil {
		t.Fatalf("Close after ReleaseRaw: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close after ReleaseRaw: %v", err)
	}

	s2 := pipe.NewSenderFromRaw(sraw)
	r2 := pipe.NewReceiverFromRaw(rraw)
	t.Cleanup(func() {
		_ = s2.Close()
		_ = r2.Close()
	})

	if s2.Raw() != sraw || r2.Raw() != rraw {
		t.Fatalf("Raw = %d, %d; want %d, %d", s2.Raw(), r2.Raw(), sraw, rraw)
	}

	msg := []byte("still connected")
	if _, err := s2.Write(msg); err != nil {
		t.Fatalf("Write on rebuilt sender: %v", err)
	}
	buf := make([]byte, len(msg))
	n, err := r2.Read(buf)
	if err != nil || n != len(msg) {
		t.Fatalf("Read on rebuilt receiver = %d, %v", n, err)
	}
	if !bytes.Equal(buf, msg) {
		t.Errorf("rebuilt pair transferred %q, want %q", buf, msg)
	}
}

// TestSetNonblocking toggles blocking mode and confirms plain I/O
// still works afterwards.
func TestSetNonblocking(t *testing.T) {
	s, r := mustPipe(t)

	if err := s.SetNonblocking(false); err != nil {
		t.Fatalf("SetNonblocking(false): %v", err)
	}
	if err := s.SetNonblocking(true); err != nil {
		t.Fatalf("SetNonblocking(true): %v", err)
	}
	if err := r.SetNonblocking(true); err != nil {
		t.Fatalf("SetNonblocking(true) on receiver: %v", err)
	}

	if _, err := s.Write([]byte("ok")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf := make([]byte, 2)
	if n, err := r.Read(buf); n != 2 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

// TestConcurrentSenderReceiver drives both ends from separate
// goroutines with a payload well above the pipe capacity. The
// endpoints share nothing but the kernel buffer, so no extra locking
// is involved.
func TestConcurrentSenderReceiver(t *testing.T) {
	s, r := mustPipe(t)

	payload := make([]byte, 256*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	errc := make(chan error, 1)
	go func() {
		sent := 0
		for sent < len(payload) {
			n, err := s.Write(payload[sent:])
			sent += n
			if err != nil {
				if api.IsWouldBlock(err) {
					time.Sleep(time.Millisecond)
					continue
				}
				errc <- err
				return
			}
		}
		errc <- s.Close()
	}()

	var got []byte
	buf := make([]byte, 8192)
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			if api.IsWouldBlock(err) {
				time.Sleep(time.Millisecond)
				continue
			}
			t.Fatalf("Read after %d bytes: %v", len(got), err)
		}
		if n == 0 {
			break
		}
	}

	if err := <-errc; err != nil {
		t.Fatalf("sender goroutine: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("transfer corrupted: got %d bytes, first mismatch at %d",
			len(got), firstMismatch(got, payload))
	}
}
