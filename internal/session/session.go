package session

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/canvas"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

const DefaultFrameInterval = 16 * time.Millisecond

type Msg interface{ isSessionMsg() }

type Spin struct {
	Reply chan SpinReply
}

func (Spin) isSessionMsg() {}

type SpinReply struct {
	SpinID   string
	Duration time.Duration
	Err      error
}

type SetOptions struct {
	Options []wheel.Option
	Reply   chan error
}

func (SetOptions) isSessionMsg() {}

// Resize carries the new drawing surface size, not the viewport.
type Resize struct {
	Width  float64
	Height float64
}

func (Resize) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type Outcome struct {
	SpinID string       `json:"spin_id"`
	Index  int          `json:"index"`
	Option wheel.Option `json:"option"`
}

// Snapshot is one rendered frame. Options is only set when the option set
// changed or the client just joined.
type Snapshot struct {
	Version int
	Frame   wheel.Frame
	Draw    []canvas.Command
	Options []wheel.Option
	Outcome *Outcome
}

type View struct {
	Version     int
	NumClients  int
	SpinID      string
	Frame       wheel.Frame
	Options     []wheel.Option
	LastOutcome *Outcome
}

type Config struct {
	Layout        wheel.Layout
	Duration      time.Duration
	Easing        wheel.Easing
	Rand          wheel.Rand
	Clock         wheel.Clock
	FrameInterval time.Duration
	Logger        *zap.Logger
}

// Session is the process-wide wheel. Its engine is only touched from the
// loop goroutine; everything else talks to it through Inbox.
type Session struct {
	inbox    chan Msg
	engine   *wheel.Engine
	frames   *wheel.FrameQueue
	display  *canvas.DisplayList
	clock    wheel.Clock
	interval time.Duration
	ticker   *time.Ticker

	version int
	clients map[string]chan Snapshot
	spinID  string
	result  <-chan wheel.Result
	last    *Outcome

	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func New(parent context.Context, cfg Config, options []wheel.Option) (*Session, error) {
	if cfg.Clock == nil {
		cfg.Clock = wheel.SystemClock{}
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	logger := cfg.Logger.Named("session")

	frames := &wheel.FrameQueue{}
	display := canvas.New()
	engine, err := wheel.New(wheel.Config{
		Layout:    cfg.Layout,
		Duration:  cfg.Duration,
		Easing:    cfg.Easing,
		Clock:     cfg.Clock,
		Scheduler: frames,
		Rand:      cfg.Rand,
		Surface:   display,
		Logger:    logger.Named("wheel"),
	}, options)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:    make(chan Msg, 64),
		engine:   engine,
		frames:   frames,
		display:  display,
		clock:    cfg.Clock,
		interval: cfg.FrameInterval,
		clients:  make(map[string]chan Snapshot),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go s.loop()
	return s, nil
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case <-s.tick():
			s.onFrame()

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// A rejoin under the same id retires the old outbox.
				if old, ok := s.clients[msg.ClientID]; ok && old != msg.Outbox {
					close(old)
					s.logger.Warn("replaced client outbox", zap.String("client", msg.ClientID))
				}
				// Register client + send current snapshot immediately
				select {
				case msg.Outbox <- s.snapshot(true, nil):
					s.clients[msg.ClientID] = msg.Outbox
					s.logger.Debug("client joined", zap.String("client", msg.ClientID), zap.Int("clients", len(s.clients)))
				default:
					close(msg.Outbox)
					delete(s.clients, msg.ClientID)
					s.logger.Warn("dropped client on join", zap.String("client", msg.ClientID))
				}

			case Leave:
				delete(s.clients, msg.ClientID)

			case Spin:
				ch, err := s.engine.Spin()
				if err != nil {
					msg.Reply <- SpinReply{Err: err}
					break
				}
				s.result = ch
				s.spinID = ulid.Make().String()
				s.startFrames()
				s.logger.Info("spin started", zap.String("spin_id", s.spinID))
				msg.Reply <- SpinReply{SpinID: s.spinID, Duration: s.engine.Duration()}

			case SetOptions:
				if err := s.engine.SetOptions(msg.Options); err != nil {
					msg.Reply <- err
					break
				}
				s.last = nil
				s.logger.Info("options replaced", zap.Int("count", len(msg.Options)))
				s.broadcast(s.snapshot(true, nil))
				msg.Reply <- nil

			case Resize:
				if s.engine.Resize(msg.Width, msg.Height) {
					s.broadcast(s.snapshot(false, nil))
				}

			case GetState:
				msg.Reply <- View{
					Version:     s.version,
					NumClients:  len(s.clients),
					SpinID:      s.spinID,
					Frame:       s.engine.Frame(),
					Options:     s.engine.Options(),
					LastOutcome: s.last,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) tick() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

func (s *Session) startFrames() {
	if s.ticker == nil {
		s.ticker = time.NewTicker(s.interval)
	}
}

func (s *Session) stopFrames() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// onFrame runs the engine's pending frame callbacks and broadcasts what
// they drew. The ticker only runs while the engine asks for frames.
func (s *Session) onFrame() {
	if s.frames.Flush(s.clock.Now()) == 0 {
		s.stopFrames()
		return
	}

	var outcome *Outcome
	select {
	case res, ok := <-s.result:
		if ok {
			outcome = &Outcome{SpinID: s.spinID, Index: res.Index, Option: res.Option}
			s.last = outcome
			s.logger.Info("spin settled",
				zap.String("spin_id", s.spinID),
				zap.Int("index", res.Index),
				zap.String("label", res.Option.Label),
			)
			s.result = nil
			s.spinID = ""
		}
	default:
	}

	s.broadcast(s.snapshot(false, outcome))
	if !s.frames.Pending() {
		s.stopFrames()
	}
}

func (s *Session) snapshot(withOptions bool, outcome *Outcome) Snapshot {
	snap := Snapshot{
		Version: s.version,
		Frame:   s.engine.Frame(),
		Draw:    s.display.Last(),
		Outcome: outcome,
	}
	if withOptions {
		snap.Options = s.engine.Options()
	}
	return snap
}

func (s *Session) shutdown() {
	s.stopFrames()
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	s.version++
	snap.Version = s.version
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
			s.logger.Warn("dropped slow client", zap.String("client", id))
		}
	}
}

// Inbox is how the HTTP and websocket layers talk to the wheel.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }
