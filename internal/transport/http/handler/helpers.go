package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseIDQuery(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Query(name), 10, 64)
}
