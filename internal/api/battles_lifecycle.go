package api

import (
	"errors"
	"net/http"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/keys"
	"github.com/triadlabs/triad-cards/internal/realtime"
	"github.com/triadlabs/triad-cards/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// CreateBattle opens a new challenge and returns its id and join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	// Identity comes from the session, never from the payload.
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	b, err := service.CreateBattle(h.repo, service.CreateBattleRequest{
		ChallengerEmail: email,
		Name:            req.Name,
		Description:     req.Description,
		Private:         req.Private,
		JoinCode:        generateJoinCode(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTooLong):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		case errors.Is(err, service.ErrDescTooLong):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionLong})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreate})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
	})
}

type JoinBattlePayload struct {
	JoinCode string `json:"join_code"`
}

// JoinBattle binds the session user as opponent of a pending challenge.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}

	b, err := service.JoinBattle(h.repo, code, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleFull):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		case errors.Is(err, service.ErrSelfJoin):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotJoinOwn})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdate})
		}
		return
	}

	if h.hub != nil {
		h.hub.Publish(keys.BattleTopic(b.JoinCode), realtime.Event{
			Type:    "opponent_joined",
			Payload: map[string]interface{}{"battle_id": b.ID, "status": b.Status},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"status":    b.Status,
		"message":   "Joined battle. Select a card.",
	})
}

// sessionEmail extracts the authenticated user's email from the gin context.
func sessionEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
