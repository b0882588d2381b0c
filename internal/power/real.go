package power

import (
	"fmt"
	"log"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/sweeney/lock-indication/internal/indication"
)

const (
	upowerService    = "org.freedesktop.UPower"
	upowerPath       = dbus.ObjectPath("/org/freedesktop/UPower")
	upowerInterface  = "org.freedesktop.UPower"
	devicePath       = dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")
	deviceInterface  = "org.freedesktop.UPower.Device"
	propsInterface   = "org.freedesktop.DBus.Properties"
	propOnBattery    = "OnBattery"
	propState        = "State"
	propEnergyRate   = "EnergyRate"
	propVoltage      = "Voltage"
	propTimeToFull   = "TimeToFull"
)

// UPower device State values.
const (
	upowerStateUnknown       = 0
	upowerStateCharging      = 1
	upowerStateDischarging   = 2
	upowerStateEmpty         = 3
	upowerStateFullyCharged  = 4
	upowerStatePendingCharge = 5
)

// RealSource reads the UPower display device over the system bus. It also
// implements indication.ChargeTimer via the device's TimeToFull property.
type RealSource struct {
	conn    *dbus.Conn
	device  dbus.BusObject
	upower  dbus.BusObject
	updates chan indication.BatteryStatus
	done    chan struct{}
}

// NewRealSource connects to the system bus, subscribes to battery property
// changes, and emits an initial snapshot.
func NewRealSource() (*RealSource, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	s := &RealSource{
		conn:    conn,
		device:  conn.Object(upowerService, devicePath),
		upower:  conn.Object(upowerService, upowerPath),
		updates: make(chan indication.BatteryStatus, 4),
		done:    make(chan struct{}),
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchObjectPath(devicePath),
	); err != nil {
		return nil, fmt.Errorf("subscribe battery properties: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)
	go s.watch(signals)

	if st, err := s.read(); err == nil {
		s.updates <- st
	} else {
		log.Printf("power: initial read failed: %v", err)
	}
	return s, nil
}

// Updates returns the snapshot channel.
func (s *RealSource) Updates() <-chan indication.BatteryStatus {
	return s.updates
}

// ComputeChargeTimeRemaining reads the device's TimeToFull estimate. An
// unknown estimate is reported as zero, not as an error.
func (s *RealSource) ComputeChargeTimeRemaining() (time.Duration, error) {
	v, err := s.device.GetProperty(deviceInterface + "." + propTimeToFull)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", propTimeToFull, err)
	}
	seconds, ok := v.Value().(int64)
	if !ok || seconds <= 0 {
		return 0, nil
	}
	return time.Duration(seconds) * time.Second, nil
}

// Close stops the watcher, which closes the updates channel.
func (s *RealSource) Close() error {
	close(s.done)
	return nil
}

func (s *RealSource) watch(signals <-chan *dbus.Signal) {
	defer close(s.updates)
	for {
		select {
		case <-s.done:
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			if sig.Path != devicePath {
				continue
			}
			st, err := s.read()
			if err != nil {
				log.Printf("power: read after change failed: %v", err)
				continue
			}
			select {
			case s.updates <- st:
			case <-s.done:
				return
			}
		}
	}
}

// read pulls the current battery snapshot from UPower.
func (s *RealSource) read() (indication.BatteryStatus, error) {
	var props map[string]dbus.Variant
	if err := s.device.Call(propsInterface+".GetAll", 0, deviceInterface).Store(&props); err != nil {
		return indication.BatteryStatus{}, fmt.Errorf("get device properties: %w", err)
	}

	var onBattery bool
	if v, err := s.upower.GetProperty(upowerInterface + "." + propOnBattery); err == nil {
		onBattery, _ = v.Value().(bool)
	}

	state := upowerStateUnknown
	if v, ok := props[propState]; ok {
		if u, ok := v.Value().(uint32); ok {
			state = int(u)
		}
	}
	var rateWatt, voltageVolt float64
	if v, ok := props[propEnergyRate]; ok {
		rateWatt, _ = v.Value().(float64)
	}
	if v, ok := props[propVoltage]; ok {
		voltageVolt, _ = v.Value().(float64)
	}

	status := indication.BatteryStatus{
		PluggedIn:        !onBattery,
		State:            batteryState(state),
		VoltageMicrovolt: int(voltageVolt * 1e6),
		WattageMicrowatt: int(rateWatt * 1e6),
	}
	if voltageVolt > 0 {
		status.CurrentMicroamp = int(rateWatt / voltageVolt * 1e6)
	}
	return status, nil
}

func batteryState(upowerState int) indication.BatteryState {
	switch upowerState {
	case upowerStateCharging:
		return indication.BatteryCharging
	case upowerStateDischarging, upowerStateEmpty:
		return indication.BatteryDischarging
	case upowerStateFullyCharged:
		return indication.BatteryFull
	case upowerStatePendingCharge:
		return indication.BatteryNotCharging
	default:
		return indication.BatteryUnknown
	}
}
