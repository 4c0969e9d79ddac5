// internal/exchange/exchange_test.go
package exchange

import (
	"errors"
	"strings"
	"testing"
)

type fakeChannel struct {
	writes    []string
	writeErr  error
	shortBy   int
	response  string
	readErr   error
	readCalls int
	flushes   int
}

func (f *fakeChannel) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeChannel) Write(b []byte) (int, error) {
	f.writes = append(f.writes, string(b))
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(b) - f.shortBy, nil
}

func (f *fakeChannel) ReadUntil(term byte, maxLen int) (string, error) {
	f.readCalls++
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.response, nil
}

func TestSend_AppendsExactlyOneTerminator(t *testing.T) {
	fc := &fakeChannel{}

	if err := Send(fc, "AT+CSQ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fc.writes) != 1 {
		t.Fatalf("expected one contiguous write, got %d", len(fc.writes))
	}
	if fc.writes[0] != "AT+CSQ\r" {
		t.Fatalf("wrote %q, want %q", fc.writes[0], "AT+CSQ\r")
	}
	if len(fc.writes[0]) != len("AT+CSQ")+1 {
		t.Fatalf("wrote %d bytes, want len(cmd)+1", len(fc.writes[0]))
	}
}

func TestSend_WriteFailure(t *testing.T) {
	wantErr := errors.New("write failed")
	fc := &fakeChannel{writeErr: wantErr}

	if err := Send(fc, "AT"); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestSend_ShortWrite(t *testing.T) {
	fc := &fakeChannel{shortBy: 1}

	err := Send(fc, "AT")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "short write") {
		t.Fatalf("got %v", err)
	}
}

func TestExchange_SendFailureSkipsRead(t *testing.T) {
	fc := &fakeChannel{writeErr: errors.New("write failed")}

	if _, err := Exchange(fc, "AT", 64); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if fc.readCalls != 0 {
		t.Fatalf("read called %d times after send failure, want 0", fc.readCalls)
	}
}

func TestExchange_RoundTrip(t *testing.T) {
	fc := &fakeChannel{response: "\r\n+CSQ: 24,99\r\n"}

	got, err := Exchange(fc, "AT+CSQ", 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "\r\n+CSQ: 24,99\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestExchange_ReadFailure(t *testing.T) {
	wantErr := errors.New("read failed")
	fc := &fakeChannel{readErr: wantErr}

	if _, err := Exchange(fc, "AT", 64); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil, 64); err == nil {
		t.Fatalf("expected error for nil channel")
	}
	if _, err := New(&fakeChannel{}, 1); err == nil {
		t.Fatalf("expected error for tiny max length")
	}
	if _, err := New(&fakeChannel{}, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExchanger_FlushDelegates(t *testing.T) {
	fc := &fakeChannel{}
	ex, err := New(fc, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ex.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", fc.flushes)
	}
}
