package http_api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/billionaire-caller/btcaller/internal/models"
)

// GroupResponse represents one group with its wallets in the /groups listing
type GroupResponse struct {
	Name                 string           `json:"group_name"`
	NotificationsEnabled bool             `json:"notifications_enabled"`
	Wallets              []*models.Wallet `json:"wallets"`
}

// health is a handler for the /health endpoint.
func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// stats is a handler for the /stats endpoint.
// It returns service-wide row counts.
func (s *HTTPServer) stats(c *gin.Context) {
	stats, err := s.repo.Stats()
	if err != nil {
		s.logger.Error("Failed to load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// groups is a handler for the /groups endpoint.
// It returns all groups of a chat with their wallets.
func (s *HTTPServer) groups(c *gin.Context) {
	rawChatID := c.Query("chat_id")
	if rawChatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id is required"})
		return
	}

	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		s.logger.Debug("Invalid chat_id", "error", err, "chat_id", rawChatID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat_id"})
		return
	}

	groups, err := s.repo.ListGroups(chatID)
	if err != nil {
		s.logger.Error("Failed to list groups", "error", err, "chat_id", chatID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list groups"})
		return
	}

	response := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		wallets, err := s.repo.ListWallets(chatID, group.Name)
		if err != nil {
			s.logger.Error("Failed to list wallets", "error", err, "group", group.Name)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wallets"})
			return
		}
		response = append(response, GroupResponse{
			Name:                 group.Name,
			NotificationsEnabled: group.NotificationsEnabled,
			Wallets:              wallets,
		})
	}

	c.JSON(http.StatusOK, response)
}
