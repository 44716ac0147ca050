package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Chat
	SendMessageHandler        Handler
	GetCrisisResourcesHandler Handler
	UpdatePreferencesHandler  Handler

	// Admin
	UpdateToggleHandler      Handler
	CreateResourceHandler    Handler
	ListCrisisFlagsHandler   Handler
	ListNotificationsHandler Handler

	GetVersionHandler Handler
}

func limitParam(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
