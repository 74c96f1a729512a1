package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gamehub-backend/internal/board"
	"github.com/rocketscienceinc/gamehub-backend/internal/checkers"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/tictactoe"
)

var ErrNotConnected = errors.New("player is not connected")

type roomManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	CreateRoom(ctx context.Context, kind entity.GameKind) (*entity.RoomSnapshot, error)
	JoinRoom(ctx context.Context, code, playerID string) (*entity.RoomSnapshot, error)
	LeaveRoom(ctx context.Context, code, playerID string) error
	MakeTicTacToeTurn(ctx context.Context, code, playerID string, cell int) (*tictactoe.Snapshot, error)
	MakeCheckersMove(ctx context.Context, code, playerID string, from, to board.Cell) (*checkers.Snapshot, error)
	RoomSnapshot(code string) (*entity.RoomSnapshot, error)
}

// client is one connected socket. Its mutex serializes concurrent writes;
// gorilla connections allow a single writer at a time.
type client struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	playerID string
	roomCode string
}

func (that *client) send(action string, payload ResponsePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger   *slog.Logger
	rooms    roomManager
	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, conn *client, message *Message) error

	mu          sync.Mutex
	subscribers map[string]map[*client]struct{} // room code -> clients
}

func New(logger *slog.Logger, rooms roomManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers:    make(map[string]func(context.Context, *client, *Message) error),
		subscribers: make(map[string]map[*client]struct{}),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["room:create"] = server.handleCreateRoom
	server.handlers["room:join"] = server.handleJoinRoom
	server.handlers["room:leave"] = server.handleLeaveRoom
	server.handlers["room:state"] = server.handleRoomState
	server.handlers["tictactoe:turn"] = server.handleTicTacToeTurn
	server.handlers["checkers:move"] = server.handleCheckersMove

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	connected := &client{conn: conn}
	defer that.dropClient(connected)

	for {
		var message Message
		if err = conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Error("unexpected close", "error", err)
			}

			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(connected, message.Action, fmt.Errorf("unknown action: %s", message.Action))
			continue
		}

		if err = handler(ctx, connected, &message); err != nil {
			that.logger.Info("action rejected", "action", message.Action, "error", err)
			that.sendError(connected, message.Action, err)
		}
	}
}

func (that *Server) sendError(connected *client, action string, actionErr error) {
	if err := connected.send(action, ResponsePayload{Error: actionErr.Error()}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}

func (that *Server) subscribe(connected *client, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.subscribers[code] == nil {
		that.subscribers[code] = make(map[*client]struct{})
	}
	that.subscribers[code][connected] = struct{}{}
	connected.roomCode = code
}

func (that *Server) unsubscribe(connected *client, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if members, ok := that.subscribers[code]; ok {
		delete(members, connected)
		if len(members) == 0 {
			delete(that.subscribers, code)
		}
	}
	connected.roomCode = ""
}

func (that *Server) dropClient(connected *client) {
	if connected.roomCode != "" {
		that.unsubscribe(connected, connected.roomCode)
	}

	_ = connected.conn.Close()
}

// broadcastRoom pushes the room's current snapshot to every subscriber, so
// all players see an accepted action at once.
func (that *Server) broadcastRoom(code string) {
	snapshot, err := that.rooms.RoomSnapshot(code)
	if err != nil {
		that.logger.Error("failed to build room snapshot", "code", code, "error", err)
		return
	}

	that.mu.Lock()
	members := make([]*client, 0, len(that.subscribers[code]))
	for member := range that.subscribers[code] {
		members = append(members, member)
	}
	that.mu.Unlock()

	for _, member := range members {
		if err = member.send("room:update", ResponsePayload{Room: snapshot}); err != nil {
			that.logger.Error("failed to broadcast room update", "code", code, "error", err)
		}
	}
}
