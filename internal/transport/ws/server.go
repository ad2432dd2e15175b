package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zstd"

	"driftworld/internal/world"
)

// Frame types on the wire. All frames are JSON text messages with a "type"
// discriminator.
const (
	TypeHello    = "hello"
	TypeSnapshot = "snapshot"
	TypeInput    = "input"
	TypeLook     = "look"
	TypeChunk    = "chunk"
	TypeError    = "error"
)

type baseMsg struct {
	Type string `json:"type"`
}

type helloMsg struct {
	Type           string  `json:"type"`
	SessionID      string  `json:"session_id"`
	Seed           int64   `json:"seed"`
	ChunkSize      float64 `json:"chunk_size"`
	SurfaceRes     int     `json:"surface_res"`
	RenderDistance int     `json:"render_distance"`
	TickRateHz     int     `json:"tick_rate_hz"`
}

type snapshotMsg struct {
	Type string `json:"type"`
	world.Snapshot
}

type inputMsg struct {
	Type  string           `json:"type"`
	Input world.InputState `json:"input"`
}

type lookMsg struct {
	Type  string  `json:"type"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

type chunkReqMsg struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Z    int    `json:"z"`
}

// chunkMsg carries a zstd-compressed JSON chunk. Data is base64 on the wire
// via encoding/json's []byte handling.
type chunkMsg struct {
	Type     string `json:"type"`
	X        int    `json:"x"`
	Z        int    `json:"z"`
	Encoding string `json:"encoding"`
	Data     []byte `json:"data"`
}

type errorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
	enc      *zstd.Encoder
}

func NewServer(w *world.World, logger *log.Logger) (*Server, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		enc: enc,
	}, nil
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := uuid.NewString()
		s.log.Info("session opened", "session", sessionID, "remote", r.RemoteAddr)
		defer s.log.Info("session closed", "session", sessionID)

		cfg := s.world.Config()
		hello, _ := json.Marshal(helloMsg{
			Type:           TypeHello,
			SessionID:      sessionID,
			Seed:           cfg.Seed,
			ChunkSize:      cfg.ChunkSize,
			SurfaceRes:     cfg.SurfaceRes,
			RenderDistance: cfg.RenderDistance,
			TickRateHz:     cfg.TickRateHz,
		})
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
			return
		}

		snaps, unsubscribe := s.world.Subscribe()
		defer unsubscribe()

		// Chunk replies share the writer with snapshots.
		out := make(chan []byte, 8)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine. All writes happen here; the reader never
		// touches the connection's write side.
		go func() {
			for {
				var payload []byte
				select {
				case <-ctx.Done():
					return
				case snap, ok := <-snaps:
					if !ok {
						return
					}
					payload, _ = json.Marshal(snapshotMsg{Type: TypeSnapshot, Snapshot: snap})
				case b := <-out:
					payload = b
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					cancel()
					return
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}

			var base baseMsg
			if err := json.Unmarshal(msg, &base); err != nil {
				continue
			}

			switch base.Type {
			case TypeInput:
				var in inputMsg
				if err := json.Unmarshal(msg, &in); err != nil {
					continue
				}
				s.world.SetInput(in.Input)

			case TypeLook:
				var lk lookMsg
				if err := json.Unmarshal(msg, &lk); err != nil {
					continue
				}
				s.world.SetLook(lk.Yaw, lk.Pitch)

			case TypeChunk:
				var req chunkReqMsg
				if err := json.Unmarshal(msg, &req); err != nil {
					continue
				}
				reply := s.encodeChunk(req.X, req.Z)
				select {
				case out <- reply:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// encodeChunk generates the requested chunk and packs it as zstd-compressed
// JSON. Surfaces compress well; a 33x33 chunk shrinks by roughly 4x.
func (s *Server) encodeChunk(cx, cz int) []byte {
	ch := s.world.GenerateChunk(cx, cz)
	raw, err := json.Marshal(ch)
	if err != nil {
		s.log.Error("chunk encode failed", "chunk_x", cx, "chunk_z", cz, "error", err)
		b, _ := json.Marshal(errorMsg{Type: TypeError, Error: "chunk encode failed"})
		return b
	}
	compressed := s.enc.EncodeAll(raw, nil)

	b, _ := json.Marshal(chunkMsg{
		Type:     TypeChunk,
		X:        cx,
		Z:        cz,
		Encoding: "zstd",
		Data:     compressed,
	})
	return b
}
