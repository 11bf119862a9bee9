package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aescanero/pipeline-demo/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const welcomeMessage = "🚀 CI/CD Pipeline - Application opérationnelle"

// HomeResponse is the welcome payload
type HomeResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Status      string `json:"status"`
}

// StatusResponse is the probe payload
type StatusResponse struct {
	Status string `json:"status"`
}

// ItemListResponse lists the whole catalog
type ItemListResponse struct {
	Items []catalog.Item `json:"items"`
	Total int            `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHome handles the welcome endpoint
func (s *Server) handleHome(c *gin.Context) {
	s.logger.Info("request received on /")

	c.JSON(http.StatusOK, HomeResponse{
		Message:     welcomeMessage,
		Version:     s.version,
		Environment: s.environment,
		Status:      "healthy",
	})
}

// handleHealth is the liveness probe
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady is the readiness probe
func (s *Server) handleReady(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// handleListItems returns every catalog item
func (s *Server) handleListItems(c *gin.Context) {
	c.JSON(http.StatusOK, ItemListResponse{
		Items: s.catalog.List(),
		Total: s.catalog.Count(),
	})
}

// handleGetItem returns a single item.
// A non-numeric id never reaches the catalog: it is answered like an
// unknown route.
func (s *Server) handleGetItem(c *gin.Context) {
	raw := c.Param("id")

	id, err := parseItemID(raw)
	if errors.Is(err, errInvalidItemID) {
		handleNotFound(c)
		return
	}

	var item catalog.ItemSummary
	if err == nil {
		item, err = s.catalog.Get(id)
	}
	if s.metrics != nil {
		s.metrics.RecordItemLookup(err == nil)
	}
	if err != nil {
		s.logger.Debug("item not found", zap.String("item_id", raw), zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Item non trouvé"})
		return
	}

	c.JSON(http.StatusOK, item)
}

var errInvalidItemID = errors.New("invalid item id")

// parseItemID accepts unsigned decimal integers of any length.
// Digit strings too large for an int can never name an item and are
// reported as catalog.ErrItemNotFound.
func parseItemID(raw string) (int, error) {
	if raw == "" {
		return 0, errInvalidItemID
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, errInvalidItemID
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", catalog.ErrItemNotFound, raw)
	}
	return id, nil
}

func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: http.StatusText(http.StatusNotFound)})
}

func handleMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}
