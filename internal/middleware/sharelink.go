package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
)

// ReviewContextKey is where ShareLink stores the resolved review.
const ReviewContextKey = "review"

// ShareLink resolves the :share_link path token into a hydrated review and
// stores it in the gin context. An unknown token renders 404; handlers
// behind this middleware can assume the review exists.
func ShareLink(reviews service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("share_link")

		rv, err := reviews.GetByShareLink(c.Request.Context(), token)
		if err != nil {
			code, body := serializer.FromError(err)
			c.AbortWithStatusJSON(code, body)
			return
		}
		if rv == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, serializer.NotFoundErr("review not found"))
			return
		}

		c.Set(ReviewContextKey, rv)
		c.Next()
	}
}
