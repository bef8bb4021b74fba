package battleship

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

type GameManager interface {
	CreateGame() *Game
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

// BattleshipGameManager holds the games of every connected session.
// The map is shared between session goroutines; a single Game is only
// touched by the session that created it.
type BattleshipGameManager struct {
	games     map[string]*Game
	generator FleetGenerator
	mu        sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager(generator FleetGenerator) *BattleshipGameManager {
	return &BattleshipGameManager{
		games:     make(map[string]*Game, 10),
		generator: generator,
	}
}

func (bgm *BattleshipGameManager) CreateGame() *Game {
	gameUuid := uuid.NewString()[:6]
	game := newGame(gameUuid, bgm.generator)

	bgm.mu.Lock()
	bgm.games[gameUuid] = game
	bgm.mu.Unlock()

	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
