// Command lock-indication resolves the single status message a lock-screen
// display shows and publishes it to the renderer over MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/lock-indication/internal/config"
	"github.com/sweeney/lock-indication/internal/display"
	"github.com/sweeney/lock-indication/internal/fingerprint"
	"github.com/sweeney/lock-indication/internal/indication"
	"github.com/sweeney/lock-indication/internal/lockicon"
	"github.com/sweeney/lock-indication/internal/power"
	"github.com/sweeney/lock-indication/internal/sched"
	"github.com/sweeney/lock-indication/internal/session"
	"github.com/sweeney/lock-indication/internal/status"
	"github.com/sweeney/lock-indication/internal/web"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (optional)")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", "HTTP status address (overrides config, \"off\" disables)")
	iconPin := flag.Int("icon-pin", -2, "BCM pin for the fingerprint error LED (overrides config, -1 disables)")
	tick := flag.Duration("tick", time.Minute, "Charging text refresh interval")
	resting := flag.String("resting", "", "Initial resting indication")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.Broker = *broker
	}
	if *httpAddr != "" {
		if *httpAddr == "off" {
			cfg.HTTPAddr = ""
		} else {
			cfg.HTTPAddr = *httpAddr
		}
	}
	if *iconPin != -2 {
		cfg.IconPin = *iconPin
	}

	if err := run(cfg, *tick, *resting); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, tick time.Duration, resting string) error {
	// Lock-icon LED
	var icon lockicon.Flag = lockicon.Noop{}
	if cfg.IconPin >= 0 {
		real, err := lockicon.NewRealFlag(cfg.IconPin)
		if err != nil {
			return fmt.Errorf("init lock icon: %w", err)
		}
		icon = real
	}
	defer icon.Close()

	// Session state (user unlock, screen interactivity)
	sess, err := session.NewRealSource()
	if err != nil {
		return fmt.Errorf("init session source: %w", err)
	}
	defer sess.Close()

	// Battery snapshots and charge-time estimates
	battery, err := power.NewRealSource()
	if err != nil {
		return fmt.Errorf("init power source: %w", err)
	}
	defer battery.Close()

	// Fingerprint feedback. Hardware without a sensor is not an error; the
	// daemon simply never receives help/error events.
	var fpEvents <-chan fingerprint.Event
	monitor, err := fingerprint.NewRealMonitor()
	if err != nil {
		log.Printf("fingerprint monitor unavailable: %v", err)
	} else {
		defer monitor.Close()
		fpEvents = monitor.Events()
	}

	// Display sink and remote commands
	sink, err := display.NewRealSink(cfg.Broker)
	if err != nil {
		return fmt.Errorf("init display sink: %w", err)
	}
	defer sink.Close()

	// Scheduler: fired timers are posted back onto the event loop.
	posted := make(chan func(), 16)
	scheduler := sched.NewReal(func(fn func()) { posted <- fn })

	ctrl := indication.NewController(indication.Options{
		Display:                sink,
		Session:                sess,
		LockIcon:               icon,
		ChargeTimer:            battery,
		Scheduler:              scheduler,
		Messages:               cfg.IndicationMessages(),
		WarningColor:           cfg.WarningColor(),
		SlowThresholdMicrowatt: cfg.Charging.SlowThresholdMicrowatt,
		FastThresholdMicrowatt: cfg.Charging.FastThresholdMicrowatt,
		ShowChargingCurrent:    cfg.Charging.ShowCurrent,
		DebugChargingSpeed:     cfg.Charging.DebugSpeed,
	})
	ctrl.SetRestingIndication(resting)
	ctrl.SetVisible(true)

	tracker := status.NewTracker(time.Now(), status.Config{
		Broker:                 cfg.Broker,
		HTTPAddr:               cfg.HTTPAddr,
		IconPin:                cfg.IconPin,
		TickMs:                 tick.Milliseconds(),
		SlowThresholdMicrowatt: int64(cfg.Charging.SlowThresholdMicrowatt),
		FastThresholdMicrowatt: int64(cfg.Charging.FastThresholdMicrowatt),
	})
	tracker.Update(ctrl.State())
	tracker.SetMQTTConnected(sink.IsConnected())

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := display.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := sink.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: broker=%s tick=%v icon-pin=%d", cfg.Broker, tick, cfg.IconPin)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, sink, sink, tracker,
		battery.Updates(), fpEvents, sess.Events(), sink.Commands(),
		posted, ticker.C, sigCh)
}

// systemPublisher publishes lifecycle events; satisfied by display.RealSink
// and display.FakeSink.
type systemPublisher interface {
	PublishSystem(ev display.SystemEvent) error
}

// runLoop is the single event loop that owns all controller state. Every
// case mutates the controller, then refreshes the status tracker, so display
// updates are applied in event order.
func runLoop(
	ctrl *indication.Controller,
	publisher systemPublisher,
	mqttStatus display.ConnectionStatus,
	tracker *status.Tracker,
	battery <-chan indication.BatteryStatus,
	fp <-chan fingerprint.Event,
	sess <-chan session.Event,
	commands <-chan display.Command,
	posted <-chan func(),
	tick <-chan time.Time,
	sig <-chan os.Signal,
) error {
	refresh := func() {
		if tracker != nil {
			tracker.Update(ctrl.State())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := display.SystemEvent{
				Timestamp: time.Now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				refresh()
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case fn, ok := <-posted:
			if !ok {
				return nil
			}
			fn()
			refresh()

		case st, ok := <-battery:
			if !ok {
				battery = nil
				continue
			}
			ctrl.OnBatteryUpdate(st)
			refresh()

		case ev, ok := <-fp:
			if !ok {
				fp = nil
				continue
			}
			handleFingerprint(ctrl, ev)
			refresh()

		case ev, ok := <-sess:
			if !ok {
				sess = nil
				continue
			}
			handleSession(ctrl, ev)
			refresh()

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			handleCommand(ctrl, cmd)
			refresh()

		case <-tick:
			ctrl.OnTick()
			refresh()
		}
	}
}

func handleFingerprint(ctrl *indication.Controller, ev fingerprint.Event) {
	switch ev.Kind {
	case fingerprint.EventHelp:
		log.Printf("fingerprint help %d: %s", ev.Code, ev.Text)
		ctrl.OnFingerprintHelp(ev.Code, ev.Text)
	case fingerprint.EventError:
		log.Printf("fingerprint error %d: %s", ev.Code, ev.Text)
		ctrl.OnFingerprintError(ev.Code, ev.Text)
	case fingerprint.EventAuthenticated:
		ctrl.OnFingerprintAuthenticated()
	case fingerprint.EventAuthFailed:
		ctrl.OnFingerprintAuthFailed()
	case fingerprint.EventRunningChanged:
		ctrl.OnFingerprintRunningStateChanged(ev.Running)
	}
}

func handleSession(ctrl *indication.Controller, ev session.Event) {
	switch ev.Kind {
	case session.EventScreenOn:
		ctrl.OnScreenTurnedOn()
	case session.EventScreenOff:
		// Nothing to do: interactivity is read live at dispatch time.
	case session.EventUnlockChanged:
		ctrl.OnUserUnlockedChanged()
	}
}

func handleCommand(ctrl *indication.Controller, cmd display.Command) {
	switch cmd.Action {
	case display.ActionSetResting:
		ctrl.SetRestingIndication(cmd.Text)
	case display.ActionShowTransient:
		col := indication.White
		if cmd.Color != "" {
			parsed, err := config.ParseColor(cmd.Color)
			if err != nil {
				log.Printf("command %s: %v", cmd.Action, err)
			} else {
				col = parsed
			}
		}
		ctrl.ShowTransientColor(cmd.Text, col)
		if cmd.HideAfterMs > 0 {
			ctrl.HideTransientAfter(time.Duration(cmd.HideAfterMs) * time.Millisecond)
		}
	case display.ActionHideTransient:
		ctrl.HideTransient()
	case display.ActionSetVisible:
		ctrl.SetVisible(cmd.Visible)
	}
}
