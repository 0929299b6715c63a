// internal/writer/builder_test.go
package writer

import (
	"testing"
	"time"

	cfg "github.com/tamzrod/jackdaw/internal/config"
	wingest "github.com/tamzrod/jackdaw/internal/writer/ingest"
	wmodbus "github.com/tamzrod/jackdaw/internal/writer/modbus"
)

func TestBuildPlan(t *testing.T) {
	c := cfg.Config{
		Node: cfg.NodeConfig{Hostname: "jd"},
		Mirror: cfg.MirrorConfig{
			Enabled:   true,
			Transport: cfg.TransportIngest,
			Endpoint:  "ep:1",
			UnitID:    9,
			BaseSlot:  4,
		},
	}

	p, err := BuildPlan(c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.Hostname != "jd" || p.UnitID != 9 || p.BaseAddr() != 4*24 {
		t.Fatalf("plan: %+v", p)
	}

	if _, err := BuildPlan(cfg.Config{}); err == nil {
		t.Fatalf("expected error for disabled mirror")
	}
}

func TestBuildEndpointClientPerTransport(t *testing.T) {
	mb, err := BuildEndpointClient(Plan{Transport: cfg.TransportModbus, Endpoint: "127.0.0.1:502"}, time.Second)
	if err != nil {
		t.Fatalf("modbus: %v", err)
	}
	if _, ok := mb.(*wmodbus.EndpointClient); !ok {
		t.Fatalf("expected modbus client, got %T", mb)
	}
	_ = mb.Close()

	in, err := BuildEndpointClient(Plan{Transport: cfg.TransportIngest, Endpoint: "127.0.0.1:9000"}, time.Second)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, ok := in.(*wingest.EndpointClient); !ok {
		t.Fatalf("expected ingest client, got %T", in)
	}

	if _, err := BuildEndpointClient(Plan{Transport: "mqtt", Endpoint: "x"}, time.Second); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}
