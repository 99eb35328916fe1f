package session

import "errors"

// Every operation fails with one of these named conditions. A failed
// operation leaves the session untouched: validation happens before
// any mutation.
var (
	ErrGameNotFound          = errors.New("game not found")
	ErrGameNotStarted        = errors.New("game has not started")
	ErrGameAlreadyStarted    = errors.New("game has already started")
	ErrGameFull              = errors.New("game is full")
	ErrNotHost               = errors.New("only the host can start the game")
	ErrInsufficientPlayers   = errors.New("minimum of 2 players required")
	ErrInvalidMaxPlayers     = errors.New("between 2 and 8 players allowed")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrTargetPlayerNotFound  = errors.New("target player not found")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrAlreadyDrawn          = errors.New("a drawn card is already pending")
	ErrNoDrawnCard           = errors.New("no drawn card to act on")
	ErrMustHandleDrawnCard   = errors.New("the drawn card must be played or passed first")
	ErrCardNotFound          = errors.New("card is not in your hand")
	ErrInvalidCard           = errors.New("card cannot be played now")
	ErrInvalidColor          = errors.New("unknown color")
	ErrCanPutCard            = errors.New("a playable card must be played, not drawn")
	ErrWarningNotApplicable  = errors.New("warning requires exactly one card in hand")
	ErrTargetNotOneCard      = errors.New("target does not hold exactly one card")
	ErrTargetAlreadyDeclared = errors.New("target has already declared")

	// ErrDrewPenaltyCards signals that a pending draw was drained and
	// the turn has already advanced. It is control flow, not a
	// failure: the caller must not expect a playable drawn card.
	ErrDrewPenaltyCards = errors.New("drew penalty cards; turn has passed")
)
