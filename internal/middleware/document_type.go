package middleware

import (
	"github.com/gin-gonic/gin"

	"khata/internal/domain"
)

// ContextKeyDocumentType is the gin context key holding the route's document type.
const ContextKeyDocumentType = "document_type"

// DocumentType binds every request of a route group to one document type.
func DocumentType(t domain.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDocumentType, t)
		c.Next()
	}
}

// GetDocumentType returns the document type set by DocumentType, or "" when
// the route is not bound to one.
func GetDocumentType(c *gin.Context) domain.DocumentType {
	v, ok := c.Get(ContextKeyDocumentType)
	if !ok {
		return ""
	}
	t, _ := v.(domain.DocumentType)
	return t
}
