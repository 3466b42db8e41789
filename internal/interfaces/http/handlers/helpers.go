package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/interfaces/http/middleware"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/pkg/utils"
)

// requireActor writes 401 and returns false when the request is anonymous
func requireActor(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return entities.Actor{}, false
	}
	return actor, true
}

func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	id, err := utils.ParseOptionalUUID(c.Query(name))
	if err != nil {
		response.Error(c, domainerrors.Validation("%s must be a valid UUID", name))
		return nil, false
	}
	return id, true
}

// queryInt reads an integer query parameter; malformed values count as absent
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}
