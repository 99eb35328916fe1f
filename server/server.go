package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/uno/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
}

type NewGameRes struct {
	GameID     string `json:"gameID"`
	PlayerID   string `json:"playerID"`
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
	Status     string `json:"status"`
}

type JoinGameReq struct {
	Name string `json:"name"`
}

type JoinGameRes struct {
	GameID   string `json:"gameID"`
	PlayerID string `json:"playerID"`
	Position int    `json:"position"`
}

type StartGameReq struct {
	PlayerID string `json:"playerID"`
}

type PlayCardReq struct {
	PlayerID string `json:"playerID"`
	CardName string `json:"cardName"`
	Color    string `json:"color,omitempty"`
}

type PlayCardRes struct {
	CardName   string `json:"cardName"`
	NextPlayer string `json:"nextPlayer,omitempty"`
}

type DrawCardReq struct {
	PlayerID string `json:"playerID"`
}

type DrawCardRes struct {
	CardName     string `json:"cardName,omitempty"`
	CanPlay      bool   `json:"canPlay"`
	PenaltyCards int    `json:"penaltyCards,omitempty"`
	TurnPassed   bool   `json:"turnPassed,omitempty"`
}

type ChallengeReq struct {
	PlayerID string `json:"playerID"`
	TargetID string `json:"targetID"`
}

type ChallengeRes struct {
	TargetID     string `json:"targetID"`
	PenaltyCards int    `json:"penaltyCards"`
}

type ErrorRes struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameServer exposes the session manager over HTTP and pushes its
// state-change events over websockets
type GameServer struct {
	manager *session.Manager
	hub     *hub
	http.Server
}

// NewServer creates a new GameServer and starts forwarding session
// events to websocket watchers
func NewServer(manager *session.Manager) *GameServer {
	s := &GameServer{
		manager: manager,
		hub:     newHub(),
	}

	router := http.NewServeMux()
	router.Handle("/games", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/games/", http.HandlerFunc(s.HandleGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = handlers.LoggingHandler(os.Stdout, handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router))

	go s.listenEvents()

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// listenEvents drains the session store's event feed into the hub
func (g *GameServer) listenEvents() {
	for event := range g.manager.Events() {
		g.hub.broadcast(event)
	}
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.Name == "" {
		writeInvalidRequest(w, "name is required")
		return
	}
	if data.MaxPlayers == 0 {
		data.MaxPlayers = 8
	}

	sess, playerID, err := g.manager.CreateSession(data.Name, data.MaxPlayers)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, NewGameRes{
		GameID:     sess.ID,
		PlayerID:   playerID,
		Name:       data.Name,
		MaxPlayers: sess.MaxPlayers,
		Status:     sess.Status.String(),
	})
}

// HandleGame routes game-scoped requests of the form
// /games/{gameID}/{action}
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/games/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	gameID, action := parts[0], parts[1]

	if r.Method == http.MethodGet {
		if action != "state" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		g.handleState(w, r, gameID)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch action {
	case "join":
		g.handleJoin(w, r, gameID)
	case "start":
		g.handleStart(w, r, gameID)
	case "play":
		g.handlePlay(w, r, gameID)
	case "draw":
		g.handleDraw(w, r, gameID)
	case "play-drawn":
		g.handlePlayDrawn(w, r, gameID)
	case "pass":
		g.handlePass(w, r, gameID)
	case "warn":
		g.handleWarn(w, r, gameID)
	case "challenge":
		g.handleChallenge(w, r, gameID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (g *GameServer) handleJoin(w http.ResponseWriter, r *http.Request, gameID string) {
	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.Name == "" {
		writeInvalidRequest(w, "name is required")
		return
	}

	playerID, position, err := g.manager.Join(gameID, data.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, JoinGameRes{GameID: gameID, PlayerID: playerID, Position: position})
}

func (g *GameServer) handleStart(w http.ResponseWriter, r *http.Request, gameID string) {
	var data StartGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	if err := g.manager.Start(gameID, data.PlayerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "playing"})
}

func (g *GameServer) handlePlay(w http.ResponseWriter, r *http.Request, gameID string) {
	var data PlayCardReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" || data.CardName == "" {
		writeInvalidRequest(w, "playerID and cardName are required")
		return
	}

	result, err := g.manager.PlayCard(gameID, data.PlayerID, data.CardName, data.Color)
	if err != nil {
		writeError(w, err)
		return
	}

	res := PlayCardRes{CardName: result.Card.Name}
	if result.NextPlayer != nil {
		res.NextPlayer = result.NextPlayer.PlayerID
	}
	writeJSON(w, http.StatusOK, res)
}

func (g *GameServer) handleDraw(w http.ResponseWriter, r *http.Request, gameID string) {
	var data DrawCardReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	result, err := g.manager.DrawCard(gameID, data.PlayerID)
	if err == session.ErrDrewPenaltyCards {
		// not a failure: the penalty was drained and the turn passed
		writeJSON(w, http.StatusOK, DrawCardRes{PenaltyCards: result.Penalty, TurnPassed: true})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DrawCardRes{CardName: result.Card.Name, CanPlay: result.CanPlay})
}

func (g *GameServer) handlePlayDrawn(w http.ResponseWriter, r *http.Request, gameID string) {
	var data PlayCardReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	result, err := g.manager.PlayDrawnCard(gameID, data.PlayerID, data.Color)
	if err != nil {
		writeError(w, err)
		return
	}

	res := PlayCardRes{CardName: result.Card.Name}
	if result.NextPlayer != nil {
		res.NextPlayer = result.NextPlayer.PlayerID
	}
	writeJSON(w, http.StatusOK, res)
}

func (g *GameServer) handlePass(w http.ResponseWriter, r *http.Request, gameID string) {
	var data DrawCardReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	if err := g.manager.PassTurn(gameID, data.PlayerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"passed": true})
}

func (g *GameServer) handleWarn(w http.ResponseWriter, r *http.Request, gameID string) {
	var data StartGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	if err := g.manager.DeclareWarning(gameID, data.PlayerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"warned": true})
}

func (g *GameServer) handleChallenge(w http.ResponseWriter, r *http.Request, gameID string) {
	var data ChallengeReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil || data.PlayerID == "" || data.TargetID == "" {
		writeInvalidRequest(w, "playerID and targetID are required")
		return
	}

	penalty, err := g.manager.ChallengeWarning(gameID, data.PlayerID, data.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChallengeRes{TargetID: data.TargetID, PenaltyCards: penalty})
}

func (g *GameServer) handleState(w http.ResponseWriter, r *http.Request, gameID string) {
	playerID := r.URL.Query().Get("playerID")
	if playerID == "" {
		writeInvalidRequest(w, "playerID is required")
		return
	}

	snapshot, err := g.manager.Snapshot(gameID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// HandleWS upgrades a connection and subscribes it to one game's
// event stream
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameID")
	if gameID == "" {
		writeInvalidRequest(w, "gameID is required")
		return
	}
	if g.manager.FindSession(gameID) == nil {
		writeError(w, session.ErrGameNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err.Error())
		return
	}

	g.hub.add(gameID, conn)

	// the read loop only exists to notice the peer going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				g.hub.remove(gameID, conn)
				conn.Close()
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeInvalidRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorRes{Error: ErrorBody{Code: "INVALID_REQUEST", Message: message}})
}

// errorCodes maps the session error taxonomy to wire codes
var errorCodes = map[error]string{
	session.ErrGameNotFound:          "GAME_NOT_FOUND",
	session.ErrGameNotStarted:        "GAME_NOT_STARTED",
	session.ErrGameAlreadyStarted:    "GAME_ALREADY_STARTED",
	session.ErrGameFull:              "GAME_FULL",
	session.ErrNotHost:               "NOT_HOST",
	session.ErrInsufficientPlayers:   "INSUFFICIENT_PLAYERS",
	session.ErrInvalidMaxPlayers:     "INVALID_REQUEST",
	session.ErrPlayerNotFound:        "PLAYER_NOT_FOUND",
	session.ErrTargetPlayerNotFound:  "TARGET_PLAYER_NOT_FOUND",
	session.ErrNotYourTurn:           "NOT_YOUR_TURN",
	session.ErrAlreadyDrawn:          "ALREADY_DRAWN",
	session.ErrNoDrawnCard:           "NO_DRAWN_CARD",
	session.ErrMustHandleDrawnCard:   "MUST_HANDLE_DRAWN_CARD",
	session.ErrCardNotFound:          "CARD_NOT_FOUND",
	session.ErrInvalidCard:           "INVALID_CARD",
	session.ErrInvalidColor:          "INVALID_COLOR",
	session.ErrCanPutCard:            "CAN_PUT_CARD",
	session.ErrWarningNotApplicable:  "WARNING_NOT_APPLICABLE",
	session.ErrTargetNotOneCard:      "TARGET_NOT_ONE_CARD",
	session.ErrTargetAlreadyDeclared: "TARGET_ALREADY_DECLARED",
}

func writeError(w http.ResponseWriter, err error) {
	code, ok := errorCodes[err]
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, statusForError(err), ErrorRes{Error: ErrorBody{Code: code, Message: err.Error()}})
}

func statusForError(err error) int {
	switch err {
	case session.ErrGameNotFound, session.ErrPlayerNotFound,
		session.ErrTargetPlayerNotFound, session.ErrCardNotFound:
		return http.StatusNotFound
	case session.ErrNotHost:
		return http.StatusForbidden
	case session.ErrGameAlreadyStarted, session.ErrGameFull, session.ErrNotYourTurn,
		session.ErrAlreadyDrawn, session.ErrMustHandleDrawnCard, session.ErrNoDrawnCard:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
