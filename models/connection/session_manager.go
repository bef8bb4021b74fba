package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
)

var errSignalAbsent = errors.New("incoming req payload must contain 'code' field")

const (
	defaultGracePeriod     = time.Minute * 2
	defaultCleanupInterval = time.Minute * 20
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	CleanupPeriodically(ctx context.Context)
	CountSessions() int

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	HandleAbnormalClosureSession(session *Session) error
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

func WithGracePeriod(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func WithCleanupInterval(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

func NewBattleshipSessionManager(optFuncs ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		gracePeriod:     defaultGracePeriod,
	}
	for _, opt := range optFuncs {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// ReconnectSession attaches a new connection to a session whose previous
// connection closed abnormally. The session loop blocked in
// HandleAbnormalClosureSession picks it up. Sessions with a live
// connection are not taken over.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	if err := session.reconnectionAfterAbnormalClosure(conn); err != nil {
		return err
	}
	log.Printf("session reconnected: %s\tRemote Addr: %s\n", sessionId, session.remoteAddr())
	return nil
}

// To ensure that there is no dangling connections, the session
// manager closes sessions idle for longer than the cleanup interval.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanupIdleSessions()
		}
	}
}

func (bsm *BattleshipSessionManager) cleanupIdleSessions() {
	assumedClosedConns := 10
	toClose := make([]*Session, 0, assumedClosedConns)

	bsm.mu.Lock()
	for id, session := range bsm.sessions {
		if session.idleFor() > bsm.cleanupInterval {
			toClose = append(toClose, session)
			delete(bsm.sessions, id)
		}
	}
	bsm.mu.Unlock()

	if len(toClose) == 0 {
		return
	}

	log.Println("Clean up sessions:")
	for _, session := range toClose {
		// closing the conn ends the read in the session loop
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		log.Printf("removed: %s", session.Id())
	}
}

// This function takes care of abnormal closures, e.g. a phone
// locking its screen in the middle of a game. The session waits
// for a reconnection during the grace period.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	reconnected := s.awaitReconnect()
	defer s.stopAwaitingReconnect()

	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Printf("session terminated after grace period: %s\n", s.Id())
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.Id())

	case <-reconnected:
		log.Printf("player reconnected, session: %s\n", s.Id())
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	switch connErr.Code() {
	case ConnLoopAbnormalClosureRetry:
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		// The message is lost; the client asks for CodeBoard after reconnecting.
		return nil

	default:
		return connErr
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}
			retries = 0

		default:
			return -1, []byte{}, err
		}
	}
}

// FetchCodeFromMsg reads the "code" field of an incoming frame. A frame
// that is not JSON or has no code is an error.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, errSignalAbsent
	}

	return *signal.Code, nil
}
