package api

import (
	"errors"
	"net/http"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/service"

	"github.com/gin-gonic/gin"
)

type SelectionRequest struct {
	CardPublicID string `json:"card_public_id"`
}

// SubmitSelection commits the session player's card choice for a battle.
// Re-submitting the same card is an accepted no-op; a different card is
// rejected with 409. When this call completes the pair of selections the
// battle resolves inline and the completed battle is returned.
func (h *BattleHandler) SubmitSelection(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardPublicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardRequired})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	b2, resolved, err := service.SubmitSelection(h.repo, h.hub, b.ID, email, req.CardPublicID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotParticipant})
		case errors.Is(err, service.ErrNotSelectable):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotSelectable})
		case errors.Is(err, service.ErrInvalidCard):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCard})
		case errors.Is(err, service.ErrAlreadySelected):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadySelected})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreSel})
		}
		return
	}

	if !resolved {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Selection stored. Waiting for opponent."})
		return
	}

	out, err := MarshalForContext(c, b2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncode})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle resolved", "battle": out})
}

// ResolveBattle is the manual resolution trigger. It is safe to call
// repeatedly: a completed battle returns its stored result.
func (h *BattleHandler) ResolveBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if !b.HasParticipant(email) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotParticipant})
		return
	}

	res, err := service.Resolve(h.repo, h.hub, b.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotResolvable})
		case errors.Is(err, service.ErrMissingCardData):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMissingCardData})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolve})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
