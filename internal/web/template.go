package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/lock-indication/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Lock Indication</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
.swatch { display: inline-block; width: 12px; height: 12px; border: 1px solid #888; margin-right: 6px; vertical-align: middle; }
</style>
</head>
<body>
<h1>Lock Indication</h1>

<h2>Indication</h2>
<table>
<tr><th>Text</th><td>{{orDash .Indication.Text}}</td></tr>
<tr><th>Color</th><td><span class="swatch" style="background: {{.Indication.Color.Hex}}"></span>{{.Indication.Color.Hex}}</td></tr>
<tr><th>Visible</th><td class="{{if .Indication.Visible}}on{{else}}off{{end}}">{{if .Indication.Visible}}yes{{else}}no{{end}}</td></tr>
<tr><th>Resting</th><td>{{orDash .Indication.Resting}}</td></tr>
<tr><th>Transient</th><td>{{orDash .Indication.Transient.Text}}{{if .Indication.TransientPending}} (auto-hide armed){{end}}</td></tr>
<tr><th>Deferred</th><td>{{orDash .Indication.DeferredMessage}}</td></tr>
</table>

<h2>Charging</h2>
<table>
<tr><th>Plugged in</th><td class="{{if .Indication.Charging.PluggedIn}}on{{else}}off{{end}}">{{if .Indication.Charging.PluggedIn}}yes{{else}}no{{end}}</td></tr>
<tr><th>Charged</th><td>{{if .Indication.Charging.Charged}}yes{{else}}no{{end}}</td></tr>
<tr><th>Speed</th><td>{{.Indication.Charging.Speed}}</td></tr>
<tr><th>Rate</th><td>{{.Indication.Charging.WattageMicrowatt}} µW</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Transients shown</th><td>{{.Indication.Counts.TransientsShown}}</td></tr>
<tr><th>Fingerprint help</th><td>{{.Indication.Counts.FingerprintHelp}}</td></tr>
<tr><th>Fingerprint errors</th><td>{{.Indication.Counts.FingerprintErrors}}</td></tr>
<tr><th>Deferred to screen-on</th><td>{{.Indication.Counts.DeferredScreenOn}}</td></tr>
<tr><th>Bouncer messages</th><td>{{.Indication.Counts.BouncerMessages}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Slow threshold</th><td>{{.Config.SlowThresholdMicrowatt}} µW</td></tr>
<tr><th>Fast threshold</th><td>{{.Config.FastThresholdMicrowatt}} µW</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
