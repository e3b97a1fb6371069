package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/middlewares"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

type trialBalanceRow struct {
	*models.TrialBalanceEntry
	MajorHeadName string `json:"major_head_name,omitempty"`
	GroupingName  string `json:"grouping_name,omitempty"`
}

type saveNotesRequest struct {
	Notes []*models.NoteSelectionInput `json:"notes" binding:"required"`
}

func trialBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		companyId := c.Param("companyId")
		if _, err := models.GetCompanyById(ctx, companyId); err != nil {
			writeModelError(c, err)
			return
		}
		entries, err := models.GetTrialBalanceEntries(ctx, companyId)
		if err != nil {
			writeModelError(c, err)
			return
		}

		var headIds, groupingIds []int
		for _, e := range entries {
			if e.MajorHeadId != nil {
				headIds = append(headIds, *e.MajorHeadId)
			}
			if e.GroupingId != nil {
				groupingIds = append(groupingIds, *e.GroupingId)
			}
		}
		headIds = utils.UniqueSlice(headIds)
		groupingIds = utils.UniqueSlice(groupingIds)

		headNames := make(map[int]string, len(headIds))
		if len(headIds) > 0 {
			heads, errs := middlewares.GetMajorHeads(ctx, headIds)
			if err := firstError(errs); err != nil {
				writeModelError(c, fmt.Errorf("resolve major heads: %w", err))
				return
			}
			for _, h := range heads {
				headNames[h.ID] = h.Name
			}
		}
		groupingNames := make(map[int]string, len(groupingIds))
		if len(groupingIds) > 0 {
			groupings, errs := middlewares.GetGroupings(ctx, groupingIds)
			if err := firstError(errs); err != nil {
				writeModelError(c, fmt.Errorf("resolve groupings: %w", err))
				return
			}
			for _, g := range groupings {
				groupingNames[g.ID] = g.Name
			}
		}

		rows := make([]trialBalanceRow, len(entries))
		for i, e := range entries {
			rows[i] = trialBalanceRow{
				TrialBalanceEntry: e,
				MajorHeadName:     headNames[utils.DereferencePtr(e.MajorHeadId)],
				GroupingName:      groupingNames[utils.DereferencePtr(e.GroupingId)],
			}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func getEntityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		companyId := c.Param("companyId")
		if _, err := models.GetCompanyById(ctx, companyId); err != nil {
			writeModelError(c, err)
			return
		}
		cfg, err := models.GetEntityConfig(ctx, companyId)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

func updateEntityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewEntityConfig
		if err := c.ShouldBindJSON(&input); err != nil {
			writeBadRequest(c, err)
			return
		}
		cfg, err := models.UpdateEntityConfig(c.Request.Context(), c.Param("companyId"), &input)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

func listNotesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := models.GetNoteSelections(c.Request.Context(), c.Param("companyId"))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}

func saveNotesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveNotesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		notes, err := models.SaveNoteSelections(c.Request.Context(), c.Param("companyId"), req.Notes)
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}

func initNotesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := models.InitNoteSelections(c.Request.Context(), c.Param("companyId"))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}

func autoNumberNotesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		notes, err := models.AutoNumberNotes(c.Request.Context(), c.Param("companyId"))
		if err != nil {
			writeModelError(c, err)
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}
