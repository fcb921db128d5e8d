package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/types"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

// outboxSize bounds how far a client may fall behind the frame stream
// before the session drops it. One spin at 60fps is about 300 frames.
const outboxSize = 64

func Handler(s *session.Session, logger *zap.Logger) http.HandlerFunc {
	logger = logger.Named("ws")
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// The HTTP API is CORS "*", the socket matches it.
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Debug("accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, outboxSize)
		clientID := uuid.NewString()
		log := logger.With(zap.String("client", clientID))

		if err := session.Send(r.Context(), s, session.Join{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "wheel unavailable")
			return
		}
		defer func() { _ = session.Send(context.Background(), s, session.Leave{ClientID: clientID}) }()

		// Replies and snapshots share one writer so frames stay ordered.
		direct := make(chan types.ServerMessage, 4)

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			defer writeCancel()
			for {
				var msg types.ServerMessage
				select {
				case snap, ok := <-out:
					if !ok {
						// Dropped as slow, or the session stopped.
						conn.Close(websocket.StatusTryAgainLater, "fell behind")
						return
					}
					msg = types.SnapshotMessage(snap)
				case msg = <-direct:
				case <-writeCtx.Done():
					return
				}
				if err := write(writeCtx, conn, msg); err != nil {
					log.Debug("write failed", zap.Error(err))
					return
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(writeCtx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					if !errors.Is(err, context.Canceled) {
						log.Debug("read failed", zap.Error(err))
					}
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				reply(writeCtx, direct, types.ErrorMessage("bad json"))
				continue
			}
			if msg, ok := handle(writeCtx, s, cm); ok {
				reply(writeCtx, direct, msg)
			}
		}
	}
}

// handle applies one client message. It returns a message to send back to
// this client only.
func handle(ctx context.Context, s *session.Session, cm types.ClientMessage) (types.ServerMessage, bool) {
	switch cm.Type {
	case types.ClientSpin:
		res, err := session.Ask(ctx, s, func(reply chan session.SpinReply) session.Msg {
			return session.Spin{Reply: reply}
		})
		if err == nil {
			err = res.Err
		}
		if err != nil {
			return types.ErrorMessage(err.Error()), true
		}
		return types.ServerMessage{
			Type:       types.ServerSpinStarted,
			SpinID:     res.SpinID,
			DurationMS: res.Duration.Milliseconds(),
		}, true

	case types.ClientSetOptions:
		opts := wheel.OptionsFromLabels(cm.Labels)
		setErr, err := session.Ask(ctx, s, func(reply chan error) session.Msg {
			return session.SetOptions{Options: opts, Reply: reply}
		})
		if err == nil {
			err = setErr
		}
		if err != nil {
			return types.ErrorMessage(err.Error()), true
		}
		// The new set arrives with the next snapshot.
		return types.ServerMessage{}, false

	case types.ClientResize:
		if cm.Width <= 0 || cm.Height <= 0 {
			return types.ErrorMessage("resize needs a positive width and height"), true
		}
		w, h := wheel.CanvasSize(cm.Width, cm.Height)
		if err := session.Send(ctx, s, session.Resize{Width: w, Height: h}); err != nil {
			return types.ErrorMessage(err.Error()), true
		}
		return types.ServerMessage{}, false

	default:
		return types.ErrorMessage("unknown type"), true
	}
}

func reply(ctx context.Context, direct chan<- types.ServerMessage, msg types.ServerMessage) {
	select {
	case direct <- msg:
	case <-ctx.Done():
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
