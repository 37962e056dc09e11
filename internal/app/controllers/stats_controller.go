package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/middleware"
)

// StatsController handles financial statistics operations
type StatsController struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// Finance reports payment totals
// @Summary Financial summary
// @Description Reports paid, expected, final and difference totals for all students or for one region
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param region query string false "Region code filter (e.g. BA, KE)"
// @Success 200 {object} dto.APIResponse{data=dto.FinanceReportResponse} "Financial summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/finance [get]
func (c *StatsController) Finance(ctx *gin.Context) {
	var region *string
	if value := ctx.Query("region"); value != "" {
		region = &value
	}

	report, err := c.statsService.Finance(ctx.Request.Context(), region)
	if err != nil {
		c.logger.Error().Err(err).Msg("Finance report failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: report,
	})
}

// Overview reports per-region payment totals
// @Summary Regional overview
// @Description Reports the unfiltered totals plus one row per region with students
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OverviewResponse} "Regional overview"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/overview [get]
func (c *StatsController) Overview(ctx *gin.Context) {
	overview, err := c.statsService.Overview(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Overview report failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: overview,
	})
}

// Tiers tabulates students by full-year liability
// @Summary Membership tiers
// @Description Groups students by their full-year liability and labels the standard and double tiers
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TiersResponse} "Tier tabulation"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/tiers [get]
func (c *StatsController) Tiers(ctx *gin.Context) {
	tiers, err := c.statsService.Tiers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Tiers report failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: tiers,
	})
}
