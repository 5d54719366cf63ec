package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-builds/jobtrackr/internal/auth"
	"github.com/pranav-builds/jobtrackr/internal/dtos"
	"github.com/pranav-builds/jobtrackr/internal/services"
)

type BoardHandler struct {
	BoardService *services.BoardService
}

func NewBoardHandler(b *services.BoardService) *BoardHandler {
	return &BoardHandler{BoardService: b}
}

// ListBoards is the GET /boards endpoint. The default board is provisioned
// on first call so a fresh account always sees at least one.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.BoardService.List(c.Request.Context(), auth.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// CreateBoard is the POST /boards endpoint.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req dtos.BoardCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	board, err := h.BoardService.Create(c.Request.Context(), auth.OwnerID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}
