package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/unslop/history"
	"github.com/use-agent/unslop/models"
)

// History returns a handler for GET /api/v1/history?limit=N.
func History(hist history.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(c, models.NewServiceError(models.ErrCodeInvalidInput, "limit must be a non-negative integer", err))
				return
			}
			limit = n
		}

		runs, err := hist.Recent(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}

		entries := make([]models.HistoryEntry, 0, len(runs))
		for _, r := range runs {
			entries = append(entries, models.HistoryEntry{
				ID:          r.ID.String(),
				Kind:        string(r.Kind),
				InputSHA256: r.InputSHA256,
				ScoreBefore: r.ScoreBefore,
				ScoreAfter:  r.ScoreAfter,
				Options:     nonNil(r.Options),
				CreatedAt:   r.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, models.HistoryResponse{Success: true, Runs: entries})
	}
}
