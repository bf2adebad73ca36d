package webserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/types"
)

type Follows struct {
	db *gorm.DB
}

func NewFollows(db *gorm.DB) Follows {
	return Follows{db: db}
}

func (f Follows) Create(c *gin.Context) {
	var req struct {
		Artist string `json:"artist" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	follow := types.Follow{
		UserID: currentUserID(c),
		Artist: strings.TrimSpace(req.Artist),
	}
	if follow.Artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "artist must not be blank"})
		return
	}
	if err := f.db.Create(&follow).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"err": "already following"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": follow.ID})
}

func (f Follows) List(c *gin.Context) {
	var follows []types.Follow
	err := f.db.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"follows": follows})
}

func (f Follows) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad follow id"})
		return
	}
	res := f.db.Where("id = ? AND user_id = ?", id, currentUserID(c)).Delete(&types.Follow{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "not following"})
		return
	}
	c.Status(http.StatusNoContent)
}
