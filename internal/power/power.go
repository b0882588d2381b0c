// Package power provides battery snapshots with abstraction for testing.
// The real implementation reads the UPower display device over the system
// D-Bus; the fake delivers scripted snapshots.
package power

import "github.com/sweeney/lock-indication/internal/indication"

// Source delivers battery snapshots as they change.
type Source interface {
	// Updates returns the channel of battery snapshots. The channel is
	// closed when the source shuts down.
	Updates() <-chan indication.BatteryStatus

	// Close releases the underlying connection.
	Close() error
}
