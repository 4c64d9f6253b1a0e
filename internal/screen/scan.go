package screen

import (
	"context"

	"hostel-client/internal/qrlink"
	"hostel-client/internal/session"
)

// ScanController drives the QR scan screen. The camera subsystem delivers
// decoded payloads; the resolver decides what happens to them.
type ScanController struct {
	resolver *qrlink.Resolver
	sessions session.Store
}

// NewScanController creates the scan controller.
func NewScanController(resolver *qrlink.Resolver, sessions session.Store) *ScanController {
	return &ScanController{resolver: resolver, sessions: sessions}
}

// Begin arms the scanner. The session must be active; scanning is only
// reachable from the home screen.
func (c *ScanController) Begin(ctx context.Context) error {
	if _, err := c.sessions.Load(ctx); err != nil {
		return err
	}
	c.resolver.Arm()
	return nil
}

// HandleScan forwards one decoded payload to the resolver.
func (c *ScanController) HandleScan(ctx context.Context, data string) qrlink.Outcome {
	return c.resolver.HandleScan(ctx, data)
}

// ScanAgain re-arms the scanner after a terminal state, on explicit user
// action only.
func (c *ScanController) ScanAgain() {
	c.resolver.Reset()
}
