package modbus

import (
	"net"
	"testing"
	"time"
)

func TestPackRegistersBigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x0211, 0xFFFE})
	want := []byte{0x02, 0x11, 0xFF, 0xFE}
	if string(got) != string(want) {
		t.Fatalf("got=% x want=% x", got, want)
	}
}

func TestNewEndpointClientRequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestEmptyWriteIsNoop(t *testing.T) {
	c, err := NewEndpointClient(Config{Endpoint: "127.0.0.1:1", Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer c.Close()

	if err := c.WriteRegisters(1, 0, nil); err != nil {
		t.Fatalf("empty write must not touch the network: %v", err)
	}
}

func TestWriteToClosedPortFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c, err := NewEndpointClient(Config{Endpoint: addr, Timeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer c.Close()

	if err := c.WriteRegisters(1, 0, []uint16{1}); err == nil {
		t.Fatalf("expected dial failure")
	}
}
