package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response. Every successful endpoint answers 200; failures
// go through Failure/Abort so the body shape stays uniform.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
