package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/seabattle-companion/db/sqlc"
	cerr "github.com/saeidalz13/seabattle-companion/internal/error"
	mb "github.com/saeidalz13/seabattle-companion/models/battleship"
	mc "github.com/saeidalz13/seabattle-companion/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// frames are small JSON snapshots of two 10x10 grids
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      sqlc.Analytics
	stage          string
	ipnet          net.IPNet
}

type Option func(*RequestProcessor) error

func WithAnalytics(analytics sqlc.Analytics) Option {
	return func(rp *RequestProcessor) error {
		if analytics == nil {
			return fmt.Errorf("analytics must not be nil")
		}
		rp.analytics = analytics
		return nil
	}
}

func WithStage(stage string) Option {
	return func(rp *RequestProcessor) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		rp.stage = stage
		return nil
	}
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	optFuncs ...Option,
) (RequestProcessor, error) {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      sqlc.NoopAnalytics{},
		stage:          StageDev,
	}
	for _, opt := range optFuncs {
		if err := opt(&rp); err != nil {
			return RequestProcessor{}, err
		}
	}

	rp.ipnet = getServerIpNet()
	return rp, nil
}

// getServerIpNet returns the first IPv4 address of an interface that is up,
// used as the key of the analytics counters. Loopback is the fallback.
func getServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			log.Println("failed to list interface addresses:", err)
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Println("no non-loopback ipv4 address found; using loopback for analytics")
	return loopback
}

// GetIpNet is the server address the analytics counters are keyed by.
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		// The session loop of the old connection takes over this one
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// This either means an expired session or invalid session ID
			log.Println(err)
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			_ = conn.Close()
		}
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame *mb.Game
		sessionId   = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Printf("session closed: %s\n", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries and the grace period are already spent
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		var respMsg interface{}

		switch {
		// New game creates the session game on first use and restarts it afterwards
		case code == mc.CodeNewGame:
			if sessionGame == nil {
				sessionGame = rp.gameManager.CreateGame()
				session.SetGameUuid(sessionGame.Uuid())
			} else {
				sessionGame.Restart()
			}
			go rp.analytics.GameCreated(serverPqtypeInet)
			if rp.stage == StageDev {
				log.Printf("new game %s for session %s\n%s", sessionGame.Uuid(), sessionId, sessionGame.PlayerGrid.String())
			}
			respMsg = NewRequest().HandleBoard(sessionGame, mc.CodeNewGame)

		case !isClientCode(code):
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			respMsg = respInvalidSignal

		// Every other operation needs a game
		case sessionGame == nil:
			respNoGame := mc.NewMessage[mc.NoPayload](mc.CodeNoActiveGame)
			respNoGame.AddError(cerr.ErrNoActiveGame().Error(), "no active game; start a new game first")
			respMsg = respNoGame

		case code == mc.CodeRandomizeFleet:
			sessionGame.Randomize()
			go rp.analytics.FleetRandomized(serverPqtypeInet)
			respMsg = NewRequest().HandleBoard(sessionGame, mc.CodeRandomizeFleet)

		case code == mc.CodePlaceFleet:
			respMsg = NewRequest(payload).HandlePlaceFleet(sessionGame)

		case code == mc.CodeMark:
			respMark := NewRequest(payload).HandleMark(sessionGame)
			if rp.stage == StageDev && respMark.Error == nil {
				log.Printf("session %s marked %s: %s\n", sessionId, respMark.Payload.Label, mb.MarkName(respMark.Payload.Mark))
			}
			respMsg = respMark

		case code == mc.CodeUnmark:
			respMsg = NewRequest(payload).HandleUnmark(sessionGame)

		case code == mc.CodeSelectPendingMark:
			respMsg = NewRequest(payload).HandleSelectPendingMark(sessionGame)

		case code == mc.CodeBoard:
			respMsg = NewRequest().HandleBoard(sessionGame, mc.CodeBoard)

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			respMsg = respInvalidSignal
		}

		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}

// Codes a client may send; the rest are server to client only.
func isClientCode(code uint8) bool {
	return code >= mc.CodeNewGame && code <= mc.CodeBoard
}
