// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"time"

	cfg "github.com/tamzrod/jackdaw/internal/config"
	wingest "github.com/tamzrod/jackdaw/internal/writer/ingest"
	wmodbus "github.com/tamzrod/jackdaw/internal/writer/modbus"
)

// BuildPlan converts the mirror section into a Plan.
// Assumes config has already passed Validate and Normalize.
func BuildPlan(c cfg.Config) (Plan, error) {
	m := c.Mirror
	if !m.Enabled {
		return Plan{}, errors.New("writer: mirror disabled")
	}
	if m.Endpoint == "" {
		return Plan{}, errors.New("writer: mirror.endpoint required")
	}

	return Plan{
		Transport: m.Transport,
		Endpoint:  m.Endpoint,
		UnitID:    m.UnitID,
		BaseSlot:  m.BaseSlot,
		Hostname:  c.Node.Hostname,
	}, nil
}

// BuildEndpointClient creates the client for the plan's transport.
func BuildEndpointClient(plan Plan, timeout time.Duration) (EndpointClient, error) {
	switch plan.Transport {
	case "", cfg.TransportModbus:
		return wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: plan.Endpoint,
			Timeout:  timeout,
		})
	case cfg.TransportIngest:
		return wingest.NewEndpointClient(wingest.Config{
			Endpoint: plan.Endpoint,
			Timeout:  timeout,
		})
	default:
		return nil, fmt.Errorf("writer: unknown transport %q", plan.Transport)
	}
}
