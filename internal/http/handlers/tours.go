package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/tours
func GetTours(c *gin.Context) {
	repo := repositories.TourRepository{}
	tours, err := repo.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tours": tours})
}

// GET /api/tours/:id
func GetTourByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid tour id")
		return
	}
	repo := repositories.TourRepository{}
	tour, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tour": tour})
}
