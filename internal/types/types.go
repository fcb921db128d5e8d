package types

import (
	"github.com/DoyleJ11/spin-wheel/internal/canvas"
	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

const (
	ClientSpin       = "spin"
	ClientSetOptions = "set_options"
	ClientResize     = "resize"

	ServerSnapshot    = "snapshot"
	ServerSpinStarted = "spin_started"
	ServerError       = "error"
)

// ClientMessage is sent by browser hosts. Width and Height on "resize" are
// the viewport size; the server derives the canvas size from it.
type ClientMessage struct {
	Type   string   `json:"type"` // "spin" | "set_options" | "resize"
	Labels []string `json:"labels,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
}

type ServerMessage struct {
	Type       string           `json:"type"` // "snapshot" | "spin_started" | "error"
	Version    int              `json:"version,omitempty"`
	Frame      *wheel.Frame     `json:"frame,omitempty"`
	Draw       []canvas.Command `json:"draw,omitempty"`
	Options    []wheel.Option   `json:"options,omitempty"`
	Outcome    *session.Outcome `json:"outcome,omitempty"`
	SpinID     string           `json:"spin_id,omitempty"`
	DurationMS int64            `json:"duration_ms,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func SnapshotMessage(s session.Snapshot) ServerMessage {
	frame := s.Frame
	return ServerMessage{
		Type:    ServerSnapshot,
		Version: s.Version,
		Frame:   &frame,
		Draw:    s.Draw,
		Options: s.Options,
		Outcome: s.Outcome,
	}
}

func ErrorMessage(msg string) ServerMessage {
	return ServerMessage{Type: ServerError, Error: msg}
}

type SpinResponse struct {
	SpinID     string `json:"spin_id"`
	DurationMS int64  `json:"duration_ms"`
}

type WheelView struct {
	Version     int              `json:"version"`
	Clients     int              `json:"clients"`
	SpinID      string           `json:"spin_id,omitempty"`
	Frame       wheel.Frame      `json:"frame"`
	Options     []wheel.Option   `json:"options"`
	LastOutcome *session.Outcome `json:"last_outcome,omitempty"`
}

func ViewFrom(v session.View) WheelView {
	return WheelView{
		Version:     v.Version,
		Clients:     v.NumClients,
		SpinID:      v.SpinID,
		Frame:       v.Frame,
		Options:     v.Options,
		LastOutcome: v.LastOutcome,
	}
}
