package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/blackjack"
	"github.com/rocketscienceinc/gamehub-backend/internal/board"
	"github.com/rocketscienceinc/gamehub-backend/internal/checkers"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/pkg"
	"github.com/rocketscienceinc/gamehub-backend/internal/repository"
	"github.com/rocketscienceinc/gamehub-backend/internal/tictactoe"
)

var ErrUnknownGameKind = errors.New("unknown game kind")

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.RoomSnapshot) error
	DeleteByCode(ctx context.Context, code string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

// roomEntry pairs a live room with the mutex serializing every
// state-changing call into it. Different rooms share nothing and run in
// parallel.
type roomEntry struct {
	mu    sync.Mutex
	state entity.RoomState
}

// RoomManager is the generic dispatcher: it owns the registry of live
// rooms, routes actions to them by room code, and persists a snapshot
// after every accepted mutation. Game rules stay inside the room states;
// the manager matches on the concrete type only where an operation is
// game-specific.
type RoomManager struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]*roomEntry

	roomRepo   roomRepo
	playerRepo playerRepo

	newEngine func() blackjack.Engine
}

func NewRoomManager(logger *slog.Logger, roomRepo roomRepo, playerRepo playerRepo) *RoomManager {
	return &RoomManager{
		logger: logger,

		rooms: make(map[string]*roomEntry),

		roomRepo:   roomRepo,
		playerRepo: playerRepo,

		newEngine: func() blackjack.Engine {
			return blackjack.NewTableEngine(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // shuffle source, not crypto
		},
	}
}

// UseEngineFactory swaps the blackjack engine constructor, e.g. for tests.
func (that *RoomManager) UseEngineFactory(factory func() blackjack.Engine) {
	that.newEngine = factory
}

func (that *RoomManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player := &entity.Player{ID: pkg.GenerateSessionID()}
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id}
		if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// CreateRoom builds a fresh room of the given kind under a newly generated
// unique code and registers it.
func (that *RoomManager) CreateRoom(ctx context.Context, kind entity.GameKind) (*entity.RoomSnapshot, error) {
	that.mu.Lock()

	code := pkg.GenerateRoomCode()
	for code == "" || that.rooms[code] != nil {
		code = pkg.GenerateRoomCode()
	}

	state, err := that.buildRoom(kind, code)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	that.rooms[code] = &roomEntry{state: state}
	that.mu.Unlock()

	snapshot, err := envelope(state)
	if err != nil {
		return nil, err
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist room: %w", err)
	}

	that.logger.Info("room created", "code", code, "kind", kind)

	return snapshot, nil
}

func (that *RoomManager) buildRoom(kind entity.GameKind, code string) (entity.RoomState, error) {
	switch kind {
	case entity.KindTicTacToe:
		state, err := tictactoe.New(code)
		if err != nil {
			return nil, fmt.Errorf("failed to create tictactoe room: %w", err)
		}

		return state, nil
	case entity.KindCheckers:
		state, err := checkers.New(code)
		if err != nil {
			return nil, fmt.Errorf("failed to create checkers room: %w", err)
		}

		return state, nil
	case entity.KindBlackjack:
		state, err := blackjack.New(code, that.newEngine())
		if err != nil {
			return nil, fmt.Errorf("failed to create blackjack room: %w", err)
		}

		return state, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameKind, kind)
	}
}

// JoinRoom seats the player in the room's own terms: mark binding for
// tic-tac-toe, side assignment for checkers, a seat for blackjack.
func (that *RoomManager) JoinRoom(ctx context.Context, code, playerID string) (*entity.RoomSnapshot, error) {
	entry, err := that.entry(code)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	switch state := entry.state.(type) {
	case *tictactoe.Room:
		if _, err = state.Join(playerID); err != nil {
			return nil, fmt.Errorf("failed to join tictactoe room: %w", err)
		}
	case *checkers.Room:
		if err = state.Join(playerID); err != nil {
			return nil, fmt.Errorf("failed to join checkers room: %w", err)
		}
	case *blackjack.Room:
		if _, seated := state.TryGetSeatIndex(playerID); !seated && state.SeatedCount() >= blackjack.SeatCount {
			return nil, fmt.Errorf("%w: room %s", apperror.ErrRoomFull, code)
		}
		state.GetOrAssignSeatForPlayer(playerID)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownGameKind, entry.state)
	}

	if err = that.playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: playerID, RoomCode: code}); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return that.persist(ctx, entry.state)
}

// LeaveRoom unbinds the player. Only blackjack frees the slot; board games
// keep their bindings until teardown so an interrupted game stays intact.
func (that *RoomManager) LeaveRoom(ctx context.Context, code, playerID string) error {
	entry, err := that.entry(code)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if state, ok := entry.state.(*blackjack.Room); ok {
		state.UnseatPlayer(playerID)

		if _, err = that.persist(ctx, entry.state); err != nil {
			return err
		}
	}

	if err = that.playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: playerID}); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

// MakeTicTacToeTurn applies one tic-tac-toe move in the room.
func (that *RoomManager) MakeTicTacToeTurn(ctx context.Context, code, playerID string, cell int) (*tictactoe.Snapshot, error) {
	entry, err := that.entry(code)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	state, ok := entry.state.(*tictactoe.Room)
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrWrongGame, code)
	}

	if err = state.MakeTurn(playerID, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if _, err = that.persist(ctx, state); err != nil {
		return nil, err
	}

	return state.Snapshot(), nil
}

// MakeCheckersMove applies one checkers move in the room.
func (that *RoomManager) MakeCheckersMove(ctx context.Context, code, playerID string, from, to board.Cell) (*checkers.Snapshot, error) {
	entry, err := that.entry(code)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	state, ok := entry.state.(*checkers.Room)
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrWrongGame, code)
	}

	if err = state.ApplyMove(playerID, from, to); err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	if _, err = that.persist(ctx, state); err != nil {
		return nil, err
	}

	return state.Snapshot(), nil
}

// RoomSnapshot rebuilds the public snapshot of a live room.
func (that *RoomManager) RoomSnapshot(code string) (*entity.RoomSnapshot, error) {
	entry, err := that.entry(code)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return envelope(entry.state)
}

// CloseRoom tears the room down: registry entry, stored snapshot and the
// members' room bindings. Storage failures are logged, not propagated; the
// room is gone either way.
func (that *RoomManager) CloseRoom(ctx context.Context, code string) {
	log := that.logger.With("method", "CloseRoom", "code", code)

	that.mu.Lock()
	entry, ok := that.rooms[code]
	delete(that.rooms, code)
	that.mu.Unlock()

	if !ok {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := that.roomRepo.DeleteByCode(ctx, code); err != nil {
		log.Error("failed to delete room snapshot", "error", err)
	}

	for _, memberID := range memberIDs(entry.state) {
		if err := that.playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: memberID}); err != nil {
			log.Error("failed to unbind player", "player", memberID, "error", err)
		}
	}

	log.Info("room closed")
}

func (that *RoomManager) entry(code string) (*roomEntry, error) {
	that.mu.RLock()
	entry, ok := that.rooms[code]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return entry, nil
}

func (that *RoomManager) persist(ctx context.Context, state entity.RoomState) (*entity.RoomSnapshot, error) {
	snapshot, err := envelope(state)
	if err != nil {
		return nil, err
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist room: %w", err)
	}

	return snapshot, nil
}

// envelope wraps a room's public snapshot under its kind tag.
func envelope(state entity.RoomState) (*entity.RoomSnapshot, error) {
	var (
		kind   entity.GameKind
		public any
	)

	switch concrete := state.(type) {
	case *tictactoe.Room:
		kind, public = entity.KindTicTacToe, concrete.Snapshot()
	case *checkers.Room:
		kind, public = entity.KindCheckers, concrete.Snapshot()
	case *blackjack.Room:
		kind, public = entity.KindBlackjack, concrete.Snapshot()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownGameKind, state)
	}

	raw, err := json.Marshal(public)
	if err != nil {
		return nil, fmt.Errorf("could not marshal room state: %w", err)
	}

	return &entity.RoomSnapshot{
		Code:  state.RoomCode(),
		Kind:  kind,
		State: raw,
	}, nil
}

// memberIDs lists the player identifiers bound to a room, for unbinding at
// teardown.
func memberIDs(state entity.RoomState) []string {
	var ids []string

	switch concrete := state.(type) {
	case *tictactoe.Room:
		snapshot := concrete.Snapshot()
		for _, id := range []string{snapshot.PlayerX, snapshot.PlayerO} {
			if id != "" {
				ids = append(ids, id)
			}
		}
	case *checkers.Room:
		snapshot := concrete.Snapshot()
		for _, id := range snapshot.Players {
			if id != "" {
				ids = append(ids, id)
			}
		}
	case *blackjack.Room:
		snapshot := concrete.Snapshot()
		for _, id := range snapshot.Seats {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}

	return ids
}
