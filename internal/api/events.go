package api

import (
	"net/http"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/keys"
	"github.com/triadlabs/triad-cards/internal/logging"

	"github.com/gin-gonic/gin"
)

// BattleEvents upgrades the request to a websocket subscribed to the
// battle's event topic. Clients receive selection and completion events as
// they happen instead of polling GetBattle.
func (h *BattleHandler) BattleEvents(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	if _, err := h.repo.FindBattleByJoinCode(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	topic := keys.BattleTopic(code)
	if err := h.hub.Serve(c.Writer, c.Request, topic); err != nil {
		logging.Error("websocket session ended with error", err, logging.Fields{constants.LogFieldTopic: topic})
	}
}
