package types

// Client -> Server (websocket /ws)
// spin: {}
//
// set_options:
//   labels: string[] // non-empty; colours are assigned from the palette
//
// resize:
//   width: number  // viewport width
//   height: number // viewport height
//   canvas is min(400, width-60) x min(600, height-250), at least 100 each way

// Server -> Client
// snapshot: see snapshot.go
//
// spin_started:
//   spin_id: string // ULID
//   duration_ms: number
//
// error:
//   error: string
//
// HTTP
// POST /api/generate-options { prompt: string } -> { options: string[] } | { error: string }
// GET  /api/current-options -> { options: string[] }
// POST /api/spin -> { spin_id: string, duration_ms: number } | 409 { error: string }
// GET  /api/wheel -> { version, clients, spin_id?, frame, options, last_outcome? }
// GET  /api/health -> "OK"
