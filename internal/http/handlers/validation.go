// README: JSON binding plus struct validation for request payloads.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// bindAndValidate binds the JSON body into out and runs the validate tags.
// On failure it writes the 400 response and returns false so the handler
// can short-circuit.
func bindAndValidate(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "msg": err.Error()})
		return false
	}
	if err := validate.Struct(out); err != nil {
		fields := map[string]string{}
		var ve validatorv10.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				fields[fe.StructNamespace()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	return true
}
