package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/qotd/src/data"
	"gorm.io/gorm"
)

// Curated manages the shared question and poll pools.
type Curated struct {
	db *gorm.DB
}

type questionJSON struct {
	ID     uint64 `json:"id"`
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

type pollJSON struct {
	ID      uint64   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Active  bool     `json:"active"`
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func toQuestionJSON(q data.Question) questionJSON {
	return questionJSON{ID: q.ID, Text: q.QuestionString, Active: q.InUse}
}

func toPollJSON(p data.Poll) pollJSON {
	return pollJSON{ID: p.ID, Prompt: p.Prompt, Options: []string{p.OptionA, p.OptionB}, Active: p.InUse}
}

func (h Curated) ListQuestions(c *gin.Context) {
	rows, err := data.ListQuestions(c.Request.Context(), h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load questions"})
		return
	}
	out := make([]questionJSON, 0, len(rows))
	for _, q := range rows {
		out = append(out, toQuestionJSON(q))
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

func (h Curated) CreateQuestion(c *gin.Context) {
	var req struct {
		Text   string `json:"text" binding:"required,max=2000"`
		Active *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	q, err := data.AddQuestion(c.Request.Context(), h.db, req.Text, req.Active == nil || *req.Active)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toQuestionJSON(*q))
}

func (h Curated) UpdateQuestion(c *gin.Context) {
	h.update(c, data.SetQuestionActive)
}

func (h Curated) ListPolls(c *gin.Context) {
	rows, err := data.ListPolls(c.Request.Context(), h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load polls"})
		return
	}
	out := make([]pollJSON, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPollJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"polls": out})
}

func (h Curated) CreatePoll(c *gin.Context) {
	var req struct {
		Prompt  string   `json:"prompt" binding:"required,max=256"`
		Options []string `json:"options" binding:"required,len=2,dive,required,max=255"`
		Active  *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	p, err := data.AddPoll(c.Request.Context(), h.db, req.Prompt, req.Options[0], req.Options[1], req.Active == nil || *req.Active)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toPollJSON(*p))
}

func (h Curated) UpdatePoll(c *gin.Context) {
	h.update(c, data.SetPollActive)
}

func (h Curated) update(c *gin.Context, set func(context.Context, *gorm.DB, uint64, bool) error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid id"})
		return
	}
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := set(c.Request.Context(), h.db, id, *req.Active); err != nil {
		if errors.Is(err, data.ErrCuratedNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *req.Active})
}
