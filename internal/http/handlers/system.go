package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	dbutil "backend/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tourism backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database not connected")
		return
	}
	if !dbutil.HasTable(intconfig.DB, "bookings") {
		RespondError(c, http.StatusInternalServerError, "bookings table missing, run scripts/schema.sql")
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "database query failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "database connection OK",
		"bookings_in_db": count,
		"payments_table": dbutil.HasTable(intconfig.DB, "payments"),
	})
}
