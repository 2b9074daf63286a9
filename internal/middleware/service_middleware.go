package middleware

import (
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/gin-gonic/gin"
)

const serviceKey = "exchange_service"

func ServiceMiddleware(svc *exchange.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(serviceKey, svc)
		c.Next()
	}
}

func GetService(c *gin.Context) *exchange.Service {
	svc, exists := c.Get(serviceKey)
	if !exists {
		return nil
	}
	return svc.(*exchange.Service)
}
