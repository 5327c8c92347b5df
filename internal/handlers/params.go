package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// uuidParam reads a path uuid, answering 400 itself when malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos: "+err.Error())
}
