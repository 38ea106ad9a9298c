package routes

import (
	"github.com/gin-gonic/gin"

	"courtside/handlers"
	"courtside/middleware"
	"courtside/utils"
)

// SetupCallbackRouter wires the payment gateway callback listener.
func SetupCallbackRouter(payment *handlers.PaymentCallbackHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	router.GET("/payment/success", payment.Success)
	router.GET("/payment/failure", payment.Failure)

	return router
}
