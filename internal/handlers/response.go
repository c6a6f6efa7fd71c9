package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/resources"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/mroshb/friends_api/pkg/logger"
)

func respondError(c *gin.Context, err error) {
	appErr := errors.As(err)
	status, doc := resources.Error(appErr)

	if status >= 500 {
		logger.Error("Request failed", "path", c.FullPath(), "error", appErr.Error())
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, doc)
}
