package handler

import (
	"parlor/internal/app/chat"
	"parlor/internal/configs"
)

// AppDeps bundles the dependencies shared by all handlers.
type AppDeps struct {
	Manager *chat.Manager
	Config  *configs.AppConfig
}
