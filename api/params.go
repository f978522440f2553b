package api

import (
	"strconv"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

const timeLayout = "02-01-2006 15:04"

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

type pageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func parsePage(c *gin.Context) (domain.Page, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid pagination parameters")
		return domain.Page{}, false
	}
	return domain.NewPage(q.Limit, q.Offset), true
}
