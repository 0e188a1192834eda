package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "enquiry backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "database connection OK",
		"enquiries_table": utils.HasTable(intconfig.DB, "enquiries"),
		"users_table":     utils.HasTable(intconfig.DB, "users"),
	})
}
