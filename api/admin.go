package api

import (
	"net/http"

	"github.com/Skyxo/killer/pkg/storage"
	"github.com/gin-gonic/gin"
)

// GetAdminOverview godoc
// @Summary Get admin overview
// @Schemes GET
// @Description Get every field of every player along with the live assignment cycles
// @Tags admin
// @Produce json
// @Success 200 {object} visibility.AdminOverview
// @Failure 401 {object} HttpError
// @Failure 403 {object} HttpError
// @Router /api/admin/overview [get]
func handleGetAdminOverview(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		snap, viewer := fromContext(c)
		overview, err := api.filter.Admin(c.Request.Context(), snap, viewer)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

// GetAdminExport godoc
// @Summary Export tables as CSV
// @Schemes GET
// @Description Export the stored players (default) or departures as CSV. Password hashes are never exported.
// @Tags admin
// @Produce text/csv
// @Param table query string false "players or departures"
// @Success 200 {string} string
// @Failure 400 {object} HttpError
// @Failure 403 {object} HttpError
// @Failure 500 {object} HttpError
// @Failure 501 {object} HttpError
// @Router /api/admin/export.csv [get]
func handleGetAdminExport(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		if api.exporter == nil {
			abortWithError(c, ErrUnavailable)
			return
		}
		ctx := c.Request.Context()
		var csv string
		table := c.DefaultQuery("table", "players")
		switch table {
		case "players":
			players, err := api.exporter.GetPlayers(ctx)
			if err != nil {
				abortWithError(c, err)
				return
			}
			csv = storage.PlayersToCSV(players)
		case "departures":
			departures, err := api.exporter.GetDepartures(ctx)
			if err != nil {
				abortWithError(c, err)
				return
			}
			csv = storage.DeparturesToCSV(departures)
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, HttpError{
				StatusCode: http.StatusBadRequest,
				Error:      "invalid table " + table,
			})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+table+".csv")
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	}
}

// GetAdminAudit godoc
// @Summary Audit the game state
// @Schemes GET
// @Description Check the assignment graph and the scores. Pass cached=true to get the last scheduled report instead.
// @Tags admin
// @Produce json
// @Param cached query bool false "Return the last report without running a new audit"
// @Success 200 {object} audit.Report
// @Failure 403 {object} HttpError
// @Failure 501 {object} HttpError
// @Router /api/admin/audit [get]
func handleGetAdminAudit(api *Api) func(c *gin.Context) {
	return func(c *gin.Context) {
		if api.auditor == nil {
			abortWithError(c, ErrUnavailable)
			return
		}
		if c.Query("cached") == "true" {
			if last := api.auditor.Last(); last != nil {
				c.JSON(http.StatusOK, last)
				return
			}
		}
		c.JSON(http.StatusOK, api.auditor.Run(c.Request.Context()))
	}
}
